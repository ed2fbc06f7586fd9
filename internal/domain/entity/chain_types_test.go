package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainDetailsMap_PoolKeyObjects(t *testing.T) {
	t.Run("EnumeratesEveryToken", func(t *testing.T) {
		chains := ChainDetailsMap{
			"ETH": {
				Tokens: []TokenWithChainDetails{
					{Token: Token{Symbol: "USDT", PoolAddress: "0xP1"}, ChainSymbol: "ETH"},
					{Token: Token{Symbol: "USDC", PoolAddress: "0xP2"}, ChainSymbol: "ETH"},
				},
			},
		}

		assert.ElementsMatch(t, []PoolKeyObject{
			{ChainSymbol: "ETH", PoolAddress: "0xP1"},
			{ChainSymbol: "ETH", PoolAddress: "0xP2"},
		}, chains.PoolKeyObjects())
	})

	t.Run("SpansChains", func(t *testing.T) {
		chains := ChainDetailsMap{
			"ETH": {Tokens: []TokenWithChainDetails{{Token: Token{PoolAddress: "0xP"}}}},
			"SOL": {Tokens: []TokenWithChainDetails{{Token: Token{PoolAddress: "So1P"}}}},
			"TRX": {},
		}

		assert.ElementsMatch(t, []PoolKeyObject{
			{ChainSymbol: "ETH", PoolAddress: "0xP"},
			{ChainSymbol: "SOL", PoolAddress: "So1P"},
		}, chains.PoolKeyObjects())
	})

	t.Run("EmptyMap", func(t *testing.T) {
		assert.Empty(t, ChainDetailsMap{}.PoolKeyObjects())
	})
}
