package calculation

import (
	"bridge-tokeninfo/internal/domain/entity"
	domainService "bridge-tokeninfo/internal/domain/service"

	"github.com/shopspring/decimal"
)

// Compile-time check
var _ domainService.ImbalanceFunc = PoolImbalance

// ImbalancePrecision is the number of decimal places of a computed imbalance.
const ImbalancePrecision = 3

var two = decimal.NewFromInt(2)

// PoolImbalance returns half the difference between the pool's token and vUSD
// balances, fixed to ImbalancePrecision places. Reserves that are not decimal
// numbers yield an empty string.
func PoolImbalance(pool entity.PoolInfo) string {
	tokenBalance, err := decimal.NewFromString(pool.TokenBalance)
	if err != nil {
		return ""
	}
	vUsdBalance, err := decimal.NewFromString(pool.VUsdBalance)
	if err != nil {
		return ""
	}
	return tokenBalance.Sub(vUsdBalance).Div(two).StringFixed(ImbalancePrecision)
}
