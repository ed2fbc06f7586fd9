package port

import (
	"context"

	"bridge-tokeninfo/internal/domain/entity"
)

// TokenInfoService defines the interface for serving normalized bridge data.
type TokenInfoService interface {
	// GetTokenInfo gets the current snapshot, from cache or freshly fetched.
	GetTokenInfo(ctx context.Context) (*entity.TokenInfo, error)

	// GetChainDetailsMap gets the chain catalog of the current snapshot.
	GetChainDetailsMap(ctx context.Context) (entity.ChainDetailsMap, error)

	// GetChain gets one chain of the current snapshot.
	GetChain(ctx context.Context, chainSymbol entity.ChainSymbol) (*entity.ChainDetailsWithTokens, error)

	// GetTokens gets every token of every chain, ordered by chain symbol then token symbol.
	GetTokens(ctx context.Context) ([]entity.TokenWithChainDetails, error)

	// GetPoolInfoMap gets the freshest known pool registry.
	GetPoolInfoMap(ctx context.Context) (entity.PoolInfoMap, error)

	// GetPoolInfo gets the state of one pool.
	GetPoolInfo(ctx context.Context, key entity.PoolKey) (*entity.PoolInfo, error)

	// RefreshTokenInfo fetches a new snapshot and replaces the cached one.
	RefreshTokenInfo(ctx context.Context) (*entity.TokenInfo, error)

	// RefreshPoolInfo fetches fresh state for every pool in the catalog and replaces the cached registry.
	RefreshPoolInfo(ctx context.Context) (entity.PoolInfoMap, error)

	// GetPendingInfo gets the transfers waiting to be processed.
	GetPendingInfo(ctx context.Context) (entity.PendingInfo, error)

	// GetGasBalance gets the gas balance of an address on a chain.
	GetGasBalance(ctx context.Context, chainSymbol entity.ChainSymbol, address string) (*entity.GasBalance, error)

	// GetTransferStatus gets the status of a transfer.
	GetTransferStatus(ctx context.Context, chainSymbol entity.ChainSymbol, txID string) (*entity.TransferStatus, error)

	// GetReceiveTransactionCost gets the destination delivery fee of a transfer.
	GetReceiveTransactionCost(
		ctx context.Context,
		req entity.ReceiveTransactionCostRequest,
	) (*entity.ReceiveTransactionCost, error)
}
