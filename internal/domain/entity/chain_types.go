package entity

// ChainSymbol identifies a blockchain in the bridge's key space (e.g. "ETH", "TRX").
// Chain symbols never contain the pool key separator.
type ChainSymbol string

// String returns the string representation of the ChainSymbol.
func (s ChainSymbol) String() string {
	return string(s)
}

// ChainType defines the family of a chain (EVM, Solana, Tron, ...).
type ChainType string

// Constants for known chain types.
const (
	ChainTypeEVM      ChainType = "EVM"
	ChainTypeSolana   ChainType = "SOLANA"
	ChainTypeTron     ChainType = "TRX"
	ChainTypeSoroban  ChainType = "SRB"
	ChainTypeSui      ChainType = "SUI"
	ChainTypeAlgorand ChainType = "ALG"
	ChainTypeStacks   ChainType = "STX"
)

// Currency defines the native currency details of a chain.
type Currency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// ChainProperties holds the static, locally known properties of a chain.
type ChainProperties struct {
	ChainSymbol    ChainSymbol `json:"chainSymbol" yaml:"chainSymbol"`
	ChainID        string      `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Name           string      `json:"name" yaml:"name"`
	ChainType      ChainType   `json:"chainType" yaml:"chainType"`
	NativeCurrency Currency    `json:"nativeCurrency" yaml:"nativeCurrency"`
}

// TxCostAmount holds the bridge-reported transaction cost amounts for a chain.
type TxCostAmount struct {
	Swap      string `json:"swap"`
	Pool      string `json:"pool"`
	MaxAmount string `json:"maxAmount"`
}

// SuiAddresses holds the Sui-specific object addresses of the bridge deployment.
type SuiAddresses struct {
	BridgeObjectAddress string `json:"bridgeObjectAddress"`
	BridgeAdminCap      string `json:"bridgeAdminCap,omitempty"`
	UtilsAddress        string `json:"utilsAddress,omitempty"`
}

// ChainDetails is the normalized view of a supported chain: its registry
// properties merged with the operational data reported by the bridge.
// A ChainDetails value is never mutated after it has been built.
type ChainDetails struct {
	ChainProperties
	AllbridgeChainID int           `json:"allbridgeChainId"`
	BridgeAddress    string        `json:"bridgeAddress"`
	OFTBridgeAddress string        `json:"oftBridgeAddress,omitempty"`
	TransferTime     TransferTime  `json:"transferTime"`
	TxCostAmount     TxCostAmount  `json:"txCostAmount"`
	Confirmations    int           `json:"confirmations"`
	SuiAddresses     *SuiAddresses `json:"suiAddresses,omitempty"`
}

// ChainDetailsWithTokens is a chain together with the tokens bridged on it.
type ChainDetailsWithTokens struct {
	ChainDetails
	Tokens []TokenWithChainDetails `json:"tokens"`
}

// ChainDetailsMap is a snapshot of all supported chains keyed by symbol.
type ChainDetailsMap map[ChainSymbol]ChainDetailsWithTokens

// PoolKeyObjects lists the pool of every token of every chain in the map, in no particular order.
func (m ChainDetailsMap) PoolKeyObjects() []PoolKeyObject {
	var result []PoolKeyObject
	for chainSymbol, chain := range m {
		for _, token := range chain.Tokens {
			result = append(result, PoolKeyObject{ChainSymbol: chainSymbol, PoolAddress: token.PoolAddress})
		}
	}
	return result
}
