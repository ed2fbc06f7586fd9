package entity

// PoolInfo is the state of a liquidity pool. Imbalance is derived from the
// reserves by the mapping layer and never taken from the upstream payload.
type PoolInfo struct {
	AValue             string `json:"aValue"`
	DValue             string `json:"dValue"`
	TokenBalance       string `json:"tokenBalance"`
	VUsdBalance        string `json:"vUsdBalance"`
	TotalLPAmount      string `json:"totalLpAmount"`
	AccRewardPerShareP string `json:"accRewardPerShareP"`
	P                  int    `json:"p"`
	Imbalance          string `json:"imbalance"`
}

// PoolInfoMap is the pool registry: one entry per (chain, pool address) pair.
type PoolInfoMap map[PoolKey]PoolInfo
