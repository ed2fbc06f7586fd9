package coreapi_dto

// MessengerKeyRaw is the messenger key used by the core API in transfer-time blocks.
// The API may report keys this service does not know yet.
type MessengerKeyRaw string

// Constants for known messenger keys from raw data.
const (
	MessengerKeyAllbridgeRaw MessengerKeyRaw = "allbridge"
	MessengerKeyWormholeRaw  MessengerKeyRaw = "wormhole"
	MessengerKeyCCTPRaw      MessengerKeyRaw = "cctp"
	MessengerKeyCCTPV2Raw    MessengerKeyRaw = "cctpV2"
	MessengerKeyOFTRaw       MessengerKeyRaw = "oft"
)

// ChainDetailsResponseRaw is the /token-info response keyed by chain symbol.
type ChainDetailsResponseRaw map[string]ChainDetailsRaw

// MessengerTransferTimeRaw maps a messenger key to a transfer time in milliseconds.
type MessengerTransferTimeRaw map[MessengerKeyRaw]*int64

// TransferTimeRaw maps a destination chain symbol to the per-messenger transfer times.
type TransferTimeRaw map[string]MessengerTransferTimeRaw

// ChainDetailsRaw represents one chain entry as received from the core API.
type ChainDetailsRaw struct {
	ChainID          int              `json:"chainId"`
	BridgeAddress    string           `json:"bridgeAddress"`
	OFTBridgeAddress string           `json:"oftBridgeAddress,omitempty"`
	TransferTime     TransferTimeRaw  `json:"transferTime"`
	TxCostAmount     TxCostAmountRaw  `json:"txCostAmount"`
	Confirmations    int              `json:"confirmations"`
	SuiAddresses     *SuiAddressesRaw `json:"suiAddresses,omitempty"`
	Tokens           []TokenRaw       `json:"tokens"`
}

// TxCostAmountRaw defines the transaction cost amounts of a chain from raw data.
type TxCostAmountRaw struct {
	Swap      string `json:"swap"`
	Pool      string `json:"pool"`
	MaxAmount string `json:"maxAmount"`
}

// SuiAddressesRaw defines the Sui-specific bridge addresses from raw data.
type SuiAddressesRaw struct {
	BridgeObjectAddress string `json:"bridgeObjectAddress"`
	BridgeAdminCap      string `json:"bridgeAdminCap,omitempty"`
	UtilsAddress        string `json:"utilsAddress,omitempty"`
}

// TokenFlagsRaw defines the operation flags of a token from raw data.
type TokenFlagsRaw struct {
	Swap bool `json:"swap"`
	Pool bool `json:"pool"`
}

// TokenRaw represents a token entry, with its embedded pool state, from raw data.
type TokenRaw struct {
	Symbol         string         `json:"symbol"`
	Name           string         `json:"name"`
	Decimals       int            `json:"decimals"`
	PoolAddress    string         `json:"poolAddress"`
	TokenAddress   string         `json:"tokenAddress"`
	FeeShare       string         `json:"feeShare"`
	APR            string         `json:"apr"`
	APR7d          string         `json:"apr7d"`
	APR30d         string         `json:"apr30d"`
	LPRate         string         `json:"lpRate"`
	CCTPAddress    string         `json:"cctpAddress,omitempty"`
	CCTPFeeShare   string         `json:"cctpFeeShare,omitempty"`
	CCTPV2Address  string         `json:"cctpV2Address,omitempty"`
	CCTPV2FeeShare string         `json:"cctpV2FeeShare,omitempty"`
	OFTID          string         `json:"oftId,omitempty"`
	OFTAddress     string         `json:"oftAddress,omitempty"`
	Flags          *TokenFlagsRaw `json:"flags,omitempty"`
	PoolInfo       PoolInfoRaw    `json:"poolInfo"`
}

// PoolInfoRaw defines the pool state fields from raw data. Imbalance is
// carried by some responses but is never trusted.
type PoolInfoRaw struct {
	AValue             string `json:"aValue"`
	DValue             string `json:"dValue"`
	TokenBalance       string `json:"tokenBalance"`
	VUsdBalance        string `json:"vUsdBalance"`
	TotalLPAmount      string `json:"totalLpAmount"`
	AccRewardPerShareP string `json:"accRewardPerShareP"`
	P                  int    `json:"p"`
	Imbalance          string `json:"imbalance,omitempty"`
}

// PoolInfoResponseRaw is the /pool-info response: chain symbol -> pool address -> pool state.
type PoolInfoResponseRaw map[string]map[string]PoolInfoRaw

// PoolKeyRaw identifies one pool in a /pool-info request.
type PoolKeyRaw struct {
	ChainSymbol string `json:"chainSymbol"`
	PoolAddress string `json:"poolAddress"`
}

// PoolInfoRequestRaw is the /pool-info request body.
type PoolInfoRequestRaw struct {
	Pools []PoolKeyRaw `json:"pools"`
}

// PendingAmountRaw defines a pending amount from raw data.
type PendingAmountRaw struct {
	Int   string `json:"int"`
	Float string `json:"float"`
}

// PendingTokenInfoRaw defines the pending transfers of one token from raw data.
type PendingTokenInfoRaw struct {
	PendingTxs    int              `json:"pendingTxs"`
	PendingAmount PendingAmountRaw `json:"pendingAmount"`
}

// PendingInfoResponseRaw is the /pending-info response: chain symbol -> token address -> info.
type PendingInfoResponseRaw map[string]map[string]PendingTokenInfoRaw

// GasBalanceResponseRaw is the /check/{chain}/{address} response.
type GasBalanceResponseRaw struct {
	GasBalance *string `json:"gasBalance"`
	Status     string  `json:"status"`
}

// TransferTxRaw defines one side of a transfer from raw data.
type TransferTxRaw struct {
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

// TransferStatusResponseRaw is the /chain/{chain}/{txId} response.
type TransferStatusResponseRaw struct {
	TxID                    string         `json:"txId"`
	SourceChainSymbol       string         `json:"sourceChainSymbol"`
	DestinationChainSymbol  string         `json:"destinationChainSymbol"`
	SendAmount              string         `json:"sendAmount"`
	SendAmountFormatted     string         `json:"sendAmountFormatted"`
	StableFee               string         `json:"stableFee"`
	StableFeeFormatted      string         `json:"stableFeeFormatted"`
	SourceTokenAddress      string         `json:"sourceTokenAddress"`
	DestinationTokenAddress string         `json:"destinationTokenAddress"`
	SenderAddress           string         `json:"senderAddress"`
	RecipientAddress        string         `json:"recipientAddress"`
	SignaturesCount         int            `json:"signaturesCount"`
	SignaturesNeeded        int            `json:"signaturesNeeded"`
	Send                    TransferTxRaw  `json:"send"`
	Receive                 *TransferTxRaw `json:"receive,omitempty"`
	ResponseTime            int64          `json:"responseTime"`
}

// ReceiveTransactionCostRequestRaw is the /receive-fee request body. Messenger is numeric on the wire.
type ReceiveTransactionCostRequestRaw struct {
	SourceChainID      int    `json:"sourceChainId"`
	DestinationChainID int    `json:"destinationChainId"`
	Messenger          int    `json:"messenger"`
	SourceToken        string `json:"sourceToken,omitempty"`
}

// ReceiveTransactionCostResponseRaw is the /receive-fee response.
type ReceiveTransactionCostResponseRaw struct {
	ExchangeRate            string `json:"exchangeRate"`
	Fee                     string `json:"fee"`
	SourceNativeTokenPrice  string `json:"sourceNativeTokenPrice"`
	AdminFeeShareWithExtras string `json:"adminFeeShareWithExtras,omitempty"`
}
