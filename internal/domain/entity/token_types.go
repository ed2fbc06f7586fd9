package entity

// TokenFlags tells which bridge operations a token currently supports.
type TokenFlags struct {
	Swap bool `json:"swap"`
	Pool bool `json:"pool"`
}

// Token holds the token's own fields as reported by the bridge.
type Token struct {
	Symbol         string      `json:"symbol"`
	Name           string      `json:"name"`
	Decimals       int         `json:"decimals"`
	PoolAddress    string      `json:"poolAddress"`
	TokenAddress   string      `json:"tokenAddress"`
	FeeShare       string      `json:"feeShare"`
	APR            string      `json:"apr"`
	APR7d          string      `json:"apr7d"`
	APR30d         string      `json:"apr30d"`
	LPRate         string      `json:"lpRate"`
	CCTPAddress    string      `json:"cctpAddress,omitempty"`
	CCTPFeeShare   string      `json:"cctpFeeShare,omitempty"`
	CCTPV2Address  string      `json:"cctpV2Address,omitempty"`
	CCTPV2FeeShare string      `json:"cctpV2FeeShare,omitempty"`
	OFTID          string      `json:"oftId,omitempty"`
	OFTAddress     string      `json:"oftAddress,omitempty"`
	Flags          *TokenFlags `json:"flags,omitempty"`
}

// TokenWithChainDetails is a denormalized token: the token fields plus a
// snapshot of its chain's details. The chain's display name is exposed as
// ChainName so it does not collide with the token name.
type TokenWithChainDetails struct {
	Token

	ChainSymbol      ChainSymbol   `json:"chainSymbol"`
	ChainID          string        `json:"chainId,omitempty"`
	ChainType        ChainType     `json:"chainType"`
	ChainName        string        `json:"chainName"`
	NativeCurrency   Currency      `json:"nativeCurrency"`
	AllbridgeChainID int           `json:"allbridgeChainId"`
	BridgeAddress    string        `json:"bridgeAddress"`
	OFTBridgeAddress string        `json:"oftBridgeAddress,omitempty"`
	TransferTime     TransferTime  `json:"transferTime"`
	TxCostAmount     TxCostAmount  `json:"txCostAmount"`
	Confirmations    int           `json:"confirmations"`
	SuiAddresses     *SuiAddresses `json:"suiAddresses,omitempty"`
}

// PoolKeyObject returns the pool this token belongs to.
func (t TokenWithChainDetails) PoolKeyObject() PoolKeyObject {
	return PoolKeyObject{ChainSymbol: t.ChainSymbol, PoolAddress: t.PoolAddress}
}

// TokenInfo is one normalized snapshot of the bridge: the chain/token catalog
// and the pool registry built from the same payload.
type TokenInfo struct {
	ChainDetailsMap ChainDetailsMap `json:"chainDetailsMap"`
	PoolInfoMap     PoolInfoMap     `json:"poolInfoMap"`
}
