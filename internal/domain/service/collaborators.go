package service

import "bridge-tokeninfo/internal/domain/entity"

// ChainRegistry resolves the static properties of the chains this system understands.
type ChainRegistry interface {
	// Lookup returns the properties of a chain and whether the chain is known.
	Lookup(chainSymbol entity.ChainSymbol) (entity.ChainProperties, bool)
}

// ImbalanceFunc derives a pool's imbalance from its reserves. It must be pure.
type ImbalanceFunc func(pool entity.PoolInfo) string
