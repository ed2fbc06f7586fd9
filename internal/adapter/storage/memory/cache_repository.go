package memory

import (
	"context"
	"fmt"
	"time"

	"bridge-tokeninfo/internal/config"
	"bridge-tokeninfo/internal/domain/entity"
	domainRepo "bridge-tokeninfo/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

// Cache keys
const (
	tokenInfoKey   = "token_info_v1"
	poolInfoMapKey = "pool_info_map_v1"
)

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
// Cached snapshots are shared with readers and must be treated as immutable.
type CacheRepository struct {
	cache  *cache.Cache
	logger *zap.Logger
	cfg    config.CacheConfig
}

// NewCacheRepository creates a new in-memory cache repository instance.
func NewCacheRepository(cfg config.CacheConfig, logger *zap.Logger) *CacheRepository {
	defaultExpiration := cfg.GetDefaultExpiration()
	cleanupInterval := cfg.GetCleanupInterval()

	c := cache.New(defaultExpiration, cleanupInterval)
	logger.Info(
		"Initialized go-cache for memory storage",
		zap.Duration("defaultExpiration", defaultExpiration),
		zap.Duration("cleanupInterval", cleanupInterval),
	)

	return &CacheRepository{
		cache:  c,
		logger: logger.Named("MemoryCacheStorage"),
		cfg:    cfg,
	}
}

// GetTokenInfo retrieves the cached snapshot, returning found status.
func (r *CacheRepository) GetTokenInfo(_ context.Context) (*entity.TokenInfo, bool, error) {
	if x, found := r.cache.Get(tokenInfoKey); found {
		if info, ok := x.(*entity.TokenInfo); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", tokenInfoKey))
			return info, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", tokenInfoKey), zap.Any("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", tokenInfoKey))
	return nil, false, nil
}

// SetTokenInfo caches the snapshot with a given TTL.
func (r *CacheRepository) SetTokenInfo(_ context.Context, info *entity.TokenInfo, ttl time.Duration) error {
	if info == nil {
		return fmt.Errorf("cannot cache nil token info")
	}
	ttl = r.resolveTTL(ttl, r.cfg.GetTokenInfoTTL())
	r.cache.Set(tokenInfoKey, info, ttl)
	r.logger.Debug("Memory cache set", zap.String("key", tokenInfoKey), zap.Duration("ttl", ttl))
	return nil
}

// GetPoolInfoMap retrieves the cached pool registry, returning found status.
func (r *CacheRepository) GetPoolInfoMap(_ context.Context) (entity.PoolInfoMap, bool, error) {
	if x, found := r.cache.Get(poolInfoMapKey); found {
		if pools, ok := x.(entity.PoolInfoMap); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", poolInfoMapKey))
			return pools, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", poolInfoMapKey),
			zap.Any("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", poolInfoMapKey))
	return nil, false, nil
}

// SetPoolInfoMap caches the pool registry with a given TTL.
func (r *CacheRepository) SetPoolInfoMap(_ context.Context, pools entity.PoolInfoMap, ttl time.Duration) error {
	ttl = r.resolveTTL(ttl, r.cfg.GetPoolInfoTTL())
	r.cache.Set(poolInfoMapKey, pools, ttl)
	r.logger.Debug("Memory cache set",
		zap.String("key", poolInfoMapKey), zap.Duration("ttl", ttl), zap.Int("poolCount", len(pools)),
	)
	return nil
}

// resolveTTL falls back to the per-key TTL and then to the cache default when ttl is not positive.
func (r *CacheRepository) resolveTTL(ttl, keyTTL time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if keyTTL > 0 {
		return keyTTL
	}
	return r.cfg.GetDefaultExpiration()
}
