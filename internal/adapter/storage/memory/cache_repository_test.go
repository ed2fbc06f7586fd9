package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bridge-tokeninfo/internal/config"
	"bridge-tokeninfo/internal/domain/entity"
)

func newTestCache(cfg config.CacheConfig) *CacheRepository {
	return NewCacheRepository(cfg, zap.NewNop())
}

func TestCacheRepository_TokenInfo(t *testing.T) {
	ctx := context.Background()
	repo := newTestCache(config.CacheConfig{DefaultExpiration: time.Minute, CleanupInterval: time.Minute})

	info, found, err := repo.GetTokenInfo(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, info)

	want := &entity.TokenInfo{
		ChainDetailsMap: entity.ChainDetailsMap{},
		PoolInfoMap:     entity.PoolInfoMap{"ETH_0xP": {TokenBalance: "1"}},
	}
	require.NoError(t, repo.SetTokenInfo(ctx, want, 0))

	info, found, err = repo.GetTokenInfo(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Same(t, want, info)
}

func TestCacheRepository_SetTokenInfoRejectsNil(t *testing.T) {
	repo := newTestCache(config.CacheConfig{DefaultExpiration: time.Minute})
	assert.Error(t, repo.SetTokenInfo(context.Background(), nil, time.Minute))
}

func TestCacheRepository_PoolInfoMap(t *testing.T) {
	ctx := context.Background()
	repo := newTestCache(config.CacheConfig{DefaultExpiration: time.Minute})

	_, found, err := repo.GetPoolInfoMap(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	pools := entity.PoolInfoMap{"SOL_Pool1": {VUsdBalance: "7", Imbalance: "1.000"}}
	require.NoError(t, repo.SetPoolInfoMap(ctx, pools, time.Minute))

	got, found, err := repo.GetPoolInfoMap(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, pools, got)
}

func TestCacheRepository_Expiration(t *testing.T) {
	ctx := context.Background()
	repo := newTestCache(config.CacheConfig{DefaultExpiration: time.Hour})

	require.NoError(t, repo.SetPoolInfoMap(ctx, entity.PoolInfoMap{}, 20*time.Millisecond))
	_, found, _ := repo.GetPoolInfoMap(ctx)
	require.True(t, found)

	assert.Eventually(t, func() bool {
		_, found, _ := repo.GetPoolInfoMap(ctx)
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestCacheRepository_TypeMismatchIsMiss(t *testing.T) {
	ctx := context.Background()
	repo := newTestCache(config.CacheConfig{DefaultExpiration: time.Minute})
	repo.cache.Set(tokenInfoKey, "not a snapshot", time.Minute)

	info, found, err := repo.GetTokenInfo(ctx)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, info)
}

func TestCacheRepository_ResolveTTL(t *testing.T) {
	repo := newTestCache(config.CacheConfig{DefaultExpiration: 30 * time.Minute})

	tests := []struct {
		name   string
		ttl    time.Duration
		keyTTL time.Duration
		want   time.Duration
	}{
		{name: "explicit", ttl: time.Second, keyTTL: time.Minute, want: time.Second},
		{name: "per key", ttl: 0, keyTTL: time.Minute, want: time.Minute},
		{name: "default", ttl: 0, keyTTL: 0, want: 30 * time.Minute},
		{name: "negative falls back", ttl: -1, keyTTL: 0, want: 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.resolveTTL(tt.ttl, tt.keyTTL))
		})
	}
}
