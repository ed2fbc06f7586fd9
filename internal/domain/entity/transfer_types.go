package entity

// PendingAmount is an amount pending on the bridge, in integer units and as a decimal string.
type PendingAmount struct {
	Int   string `json:"int"`
	Float string `json:"float"`
}

// PendingTokenInfo describes transfers waiting to be processed for one token.
type PendingTokenInfo struct {
	PendingTxs    int           `json:"pendingTxs"`
	PendingAmount PendingAmount `json:"pendingAmount"`
}

// PendingInfo maps chain and token address to the pending transfer summary.
type PendingInfo map[ChainSymbol]map[string]PendingTokenInfo

// GasBalance is the gas balance reported for an address on a chain.
type GasBalance struct {
	GasBalance *string `json:"gasBalance"`
	Status     string  `json:"status"`
}

// TransferTxInfo describes one side (send or receive) of a bridge transfer.
type TransferTxInfo struct {
	TxID                string `json:"txId"`
	SourceChainID       int    `json:"sourceChainId,omitempty"`
	DestinationChainID  int    `json:"destinationChainId,omitempty"`
	Sender              string `json:"sender,omitempty"`
	Recipient           string `json:"recipient,omitempty"`
	Amount              string `json:"amount,omitempty"`
	AmountFormatted     string `json:"amountFormatted,omitempty"`
	BlockTime           int64  `json:"blockTime"`
	BlockID             string `json:"blockId"`
	Confirmations       int    `json:"confirmations"`
	ConfirmationsNeeded int    `json:"confirmationsNeeded"`
	Messenger           string `json:"messenger,omitempty"`
}

// TransferStatus is the bridge's view of a transfer.
type TransferStatus struct {
	TxID                    string          `json:"txId"`
	SourceChainSymbol       ChainSymbol     `json:"sourceChainSymbol"`
	DestinationChainSymbol  ChainSymbol     `json:"destinationChainSymbol"`
	SendAmount              string          `json:"sendAmount"`
	SendAmountFormatted     string          `json:"sendAmountFormatted"`
	StableFee               string          `json:"stableFee"`
	StableFeeFormatted      string          `json:"stableFeeFormatted"`
	SourceTokenAddress      string          `json:"sourceTokenAddress"`
	DestinationTokenAddress string          `json:"destinationTokenAddress"`
	SenderAddress           string          `json:"senderAddress"`
	RecipientAddress        string          `json:"recipientAddress"`
	SignaturesCount         int             `json:"signaturesCount"`
	SignaturesNeeded        int             `json:"signaturesNeeded"`
	Send                    TransferTxInfo  `json:"send"`
	Receive                 *TransferTxInfo `json:"receive,omitempty"`
	ResponseTime            int64           `json:"responseTime"`
}

// ReceiveTransactionCostRequest asks for the fee of delivering a transfer on the destination chain.
type ReceiveTransactionCostRequest struct {
	SourceChainID      int       `json:"sourceChainId"`
	DestinationChainID int       `json:"destinationChainId"`
	Messenger          Messenger `json:"messenger"`
	SourceToken        string    `json:"sourceToken,omitempty"`
}

// ReceiveTransactionCost is the fee quote for delivering a transfer.
type ReceiveTransactionCost struct {
	ExchangeRate            string `json:"exchangeRate"`
	Fee                     string `json:"fee"`
	SourceNativeTokenPrice  string `json:"sourceNativeTokenPrice"`
	AdminFeeShareWithExtras string `json:"adminFeeShareWithExtras,omitempty"`
}
