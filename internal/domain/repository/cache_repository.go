package repository

import (
	"context"
	"time"

	"bridge-tokeninfo/internal/domain/entity"
)

// CacheRepository defines the interface for caching normalized bridge snapshots.
type CacheRepository interface {
	// GetTokenInfo retrieves the cached snapshot.
	GetTokenInfo(ctx context.Context) (*entity.TokenInfo, bool, error)

	// SetTokenInfo stores the snapshot in the cache with a specified TTL.
	SetTokenInfo(ctx context.Context, info *entity.TokenInfo, ttl time.Duration) error

	// GetPoolInfoMap retrieves the cached pool registry, which may be fresher than the snapshot's.
	GetPoolInfoMap(ctx context.Context) (entity.PoolInfoMap, bool, error)

	// SetPoolInfoMap stores the pool registry in the cache with a specified TTL.
	SetPoolInfoMap(ctx context.Context, pools entity.PoolInfoMap, ttl time.Duration) error
}
