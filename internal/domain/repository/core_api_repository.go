package repository

import (
	"context"

	"bridge-tokeninfo/internal/domain/entity"
)

// CoreAPIRepository defines the interface for accessing the bridge core API.
type CoreAPIRepository interface {
	// GetTokenInfo retrieves the chain/token catalog and the pool registry in one snapshot.
	GetTokenInfo(ctx context.Context) (*entity.TokenInfo, error)

	// GetPoolInfoMap retrieves fresh pool state for the given pools.
	GetPoolInfoMap(ctx context.Context, pools []entity.PoolKeyObject) (entity.PoolInfoMap, error)

	// GetPendingInfo retrieves the transfers waiting to be processed per chain and token.
	GetPendingInfo(ctx context.Context) (entity.PendingInfo, error)

	// GetGasBalance retrieves the gas balance of an address on a chain.
	GetGasBalance(ctx context.Context, chainSymbol entity.ChainSymbol, address string) (*entity.GasBalance, error)

	// GetTransferStatus retrieves the status of a transfer by its source transaction id.
	GetTransferStatus(ctx context.Context, chainSymbol entity.ChainSymbol, txID string) (*entity.TransferStatus, error)

	// GetReceiveTransactionCost retrieves the destination delivery fee for a transfer.
	GetReceiveTransactionCost(
		ctx context.Context,
		req entity.ReceiveTransactionCostRequest,
	) (*entity.ReceiveTransactionCost, error)
}
