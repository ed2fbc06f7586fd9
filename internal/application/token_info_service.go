package application

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"bridge-tokeninfo/internal/application/port"
	"bridge-tokeninfo/internal/config"
	"bridge-tokeninfo/internal/domain"
	"bridge-tokeninfo/internal/domain/entity"
	domainRepo "bridge-tokeninfo/internal/domain/repository"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Compile-time check to ensure tokenInfoService implements TokenInfoService
var _ port.TokenInfoService = (*tokenInfoService)(nil)

// tokenInfoService implements the port.TokenInfoService interface orchestrating snapshot operations.
type tokenInfoService struct {
	coreRepo          domainRepo.CoreAPIRepository
	cacheRepo         domainRepo.CacheRepository
	logger            *zap.Logger
	cfg               config.Config
	rootCtx           context.Context
	isRefreshing      *atomic.Bool
	isRefreshingPools *atomic.Bool
}

// NewTokenInfoService creates a new instance of the token info service and
// starts its background refresher, which stops when rootCtx is done.
func NewTokenInfoService(
	rootCtx context.Context,
	coreRepo domainRepo.CoreAPIRepository,
	cacheRepo domainRepo.CacheRepository,
	logger *zap.Logger,
	cfg config.Config,
) port.TokenInfoService {
	s := newTokenInfoService(rootCtx, coreRepo, cacheRepo, logger, cfg)

	go s.startBackgroundRefresher()

	return s
}

func newTokenInfoService(
	rootCtx context.Context,
	coreRepo domainRepo.CoreAPIRepository,
	cacheRepo domainRepo.CacheRepository,
	logger *zap.Logger,
	cfg config.Config,
) *tokenInfoService {
	return &tokenInfoService{
		coreRepo:          coreRepo,
		cacheRepo:         cacheRepo,
		logger:            logger.Named("TokenInfoService"),
		cfg:               cfg,
		rootCtx:           rootCtx,
		isRefreshing:      new(atomic.Bool),
		isRefreshingPools: new(atomic.Bool),
	}
}

// GetTokenInfo retrieves the snapshot, prioritizing cache, and falls back to the repository.
func (s *tokenInfoService) GetTokenInfo(ctx context.Context) (*entity.TokenInfo, error) {
	cached, found, err := s.cacheRepo.GetTokenInfo(ctx)
	if err != nil {
		s.logger.Warn("Cache error when getting token info", zap.Error(err))
	}
	if found {
		s.logger.Debug("Cache hit for token info")
		return cached, nil
	}

	s.logger.Debug("Cache miss for token info, fetching from core API...")
	return s.RefreshTokenInfo(ctx)
}

// RefreshTokenInfo fetches a fresh snapshot and caches it together with its pool registry.
func (s *tokenInfoService) RefreshTokenInfo(ctx context.Context) (*entity.TokenInfo, error) {
	info, err := s.coreRepo.GetTokenInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch token info: %w", domain.ErrUpstreamSourceFailure, err)
	}

	if cacheErr := s.cacheRepo.SetTokenInfo(ctx, info, s.cfg.Cache.GetTokenInfoTTL()); cacheErr != nil {
		s.logger.Error("Failed to cache token info", zap.Error(cacheErr))
	}
	if cacheErr := s.cacheRepo.SetPoolInfoMap(ctx, info.PoolInfoMap, s.cfg.Cache.GetPoolInfoTTL()); cacheErr != nil {
		s.logger.Error("Failed to cache pool info map from token info", zap.Error(cacheErr))
	}

	s.logger.Info("Token info refreshed",
		zap.Int("chainCount", len(info.ChainDetailsMap)), zap.Int("poolCount", len(info.PoolInfoMap)),
	)
	return info, nil
}

// GetChainDetailsMap retrieves the chain catalog of the current snapshot.
func (s *tokenInfoService) GetChainDetailsMap(ctx context.Context) (entity.ChainDetailsMap, error) {
	info, err := s.GetTokenInfo(ctx)
	if err != nil {
		return nil, err
	}
	return info.ChainDetailsMap, nil
}

// GetChain retrieves one chain of the current snapshot.
func (s *tokenInfoService) GetChain(
	ctx context.Context,
	chainSymbol entity.ChainSymbol,
) (*entity.ChainDetailsWithTokens, error) {
	chains, err := s.GetChainDetailsMap(ctx)
	if err != nil {
		return nil, err
	}
	chain, ok := chains[chainSymbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrChainNotFound, chainSymbol)
	}
	return &chain, nil
}

// GetTokens flattens the catalog into a token list ordered by chain symbol then token symbol.
func (s *tokenInfoService) GetTokens(ctx context.Context) ([]entity.TokenWithChainDetails, error) {
	chains, err := s.GetChainDetailsMap(ctx)
	if err != nil {
		return nil, err
	}

	tokens := lo.FlatMap(lo.Values(chains), func(chain entity.ChainDetailsWithTokens, _ int) []entity.TokenWithChainDetails {
		return chain.Tokens
	})
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].ChainSymbol != tokens[j].ChainSymbol {
			return tokens[i].ChainSymbol < tokens[j].ChainSymbol
		}
		return tokens[i].Symbol < tokens[j].Symbol
	})
	return tokens, nil
}

// GetPoolInfoMap retrieves the cached pool registry, which the pool refresher keeps
// fresher than the snapshot's, and falls back to the snapshot.
func (s *tokenInfoService) GetPoolInfoMap(ctx context.Context) (entity.PoolInfoMap, error) {
	pools, found, err := s.cacheRepo.GetPoolInfoMap(ctx)
	if err != nil {
		s.logger.Warn("Cache error when getting pool info map", zap.Error(err))
	}
	if found {
		return pools, nil
	}

	info, err := s.GetTokenInfo(ctx)
	if err != nil {
		return nil, err
	}
	return info.PoolInfoMap, nil
}

// GetPoolInfo retrieves the state of one pool.
func (s *tokenInfoService) GetPoolInfo(ctx context.Context, key entity.PoolKey) (*entity.PoolInfo, error) {
	pools, err := s.GetPoolInfoMap(ctx)
	if err != nil {
		return nil, err
	}
	pool, ok := pools[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPoolNotFound, key)
	}
	return &pool, nil
}

// RefreshPoolInfo requests fresh state for the pools implied by the catalog and
// overlays it on the known registry, so pools outside the catalog are kept.
func (s *tokenInfoService) RefreshPoolInfo(ctx context.Context) (entity.PoolInfoMap, error) {
	chains, err := s.GetChainDetailsMap(ctx)
	if err != nil {
		return nil, err
	}

	poolKeys := chains.PoolKeyObjects()
	if len(poolKeys) == 0 {
		s.logger.Debug("No pools in catalog, skipping pool refresh")
		return s.GetPoolInfoMap(ctx)
	}

	fresh, err := s.coreRepo.GetPoolInfoMap(ctx, poolKeys)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch pool info: %w", domain.ErrUpstreamSourceFailure, err)
	}

	current, err := s.GetPoolInfoMap(ctx)
	if err != nil {
		s.logger.Warn("Failed to load current pool info map, replacing it entirely", zap.Error(err))
	}
	merged := make(entity.PoolInfoMap, len(current)+len(fresh))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range fresh {
		merged[k] = v
	}

	if cacheErr := s.cacheRepo.SetPoolInfoMap(ctx, merged, s.cfg.Cache.GetPoolInfoTTL()); cacheErr != nil {
		s.logger.Error("Failed to cache refreshed pool info map", zap.Error(cacheErr))
	}

	s.logger.Debug("Pool info refreshed",
		zap.Int("requested", len(poolKeys)), zap.Int("received", len(fresh)), zap.Int("total", len(merged)),
	)
	return merged, nil
}

// GetPendingInfo retrieves the pending transfers from the core API.
func (s *tokenInfoService) GetPendingInfo(ctx context.Context) (entity.PendingInfo, error) {
	return s.coreRepo.GetPendingInfo(ctx)
}

// GetGasBalance retrieves a gas balance from the core API.
func (s *tokenInfoService) GetGasBalance(
	ctx context.Context,
	chainSymbol entity.ChainSymbol,
	address string,
) (*entity.GasBalance, error) {
	return s.coreRepo.GetGasBalance(ctx, chainSymbol, address)
}

// GetTransferStatus retrieves a transfer status from the core API.
func (s *tokenInfoService) GetTransferStatus(
	ctx context.Context,
	chainSymbol entity.ChainSymbol,
	txID string,
) (*entity.TransferStatus, error) {
	return s.coreRepo.GetTransferStatus(ctx, chainSymbol, txID)
}

// GetReceiveTransactionCost retrieves a delivery fee quote from the core API.
func (s *tokenInfoService) GetReceiveTransactionCost(
	ctx context.Context,
	req entity.ReceiveTransactionCostRequest,
) (*entity.ReceiveTransactionCost, error) {
	return s.coreRepo.GetReceiveTransactionCost(ctx, req)
}

// startBackgroundRefresher periodically replaces the snapshot and, more often, the pool registry.
func (s *tokenInfoService) startBackgroundRefresher() {
	interval := s.cfg.Refresher.GetInterval()
	if interval <= 0 {
		s.logger.Info("Background refresher disabled (interval <= 0)")
		return
	}

	if s.cfg.Refresher.RunOnStartup {
		s.refreshTokenInfoOnce()
	}

	s.logger.Info("Starting background refresher",
		zap.Duration("interval", interval), zap.Duration("poolInterval", s.cfg.Refresher.GetPoolInterval()),
	)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var poolTick <-chan time.Time
	if poolInterval := s.cfg.Refresher.GetPoolInterval(); poolInterval > 0 {
		poolTicker := time.NewTicker(poolInterval)
		defer poolTicker.Stop()
		poolTick = poolTicker.C
	}

	for {
		select {
		case <-ticker.C:
			s.refreshTokenInfoOnce()
		case <-poolTick:
			s.refreshPoolInfoOnce()
		case <-s.rootCtx.Done():
			s.logger.Info("Background refresher stopping due to context cancellation.")
			return
		}
	}
}

// refreshTokenInfoOnce runs one snapshot refresh unless one is already in progress.
func (s *tokenInfoService) refreshTokenInfoOnce() {
	if !s.isRefreshing.CompareAndSwap(false, true) {
		s.logger.Debug("Background refresher tick: token info refresh already in progress.")
		return
	}
	defer s.isRefreshing.Store(false)

	if _, err := s.RefreshTokenInfo(s.rootCtx); err != nil {
		if s.rootCtx.Err() != nil {
			s.logger.Warn("Token info refresh cancelled due to application shutdown")
			return
		}
		s.logger.Error("Error refreshing token info in background", zap.Error(err))
	}
}

// refreshPoolInfoOnce runs one pool refresh unless one is already in progress.
func (s *tokenInfoService) refreshPoolInfoOnce() {
	if !s.isRefreshingPools.CompareAndSwap(false, true) {
		s.logger.Debug("Background refresher tick: pool refresh already in progress.")
		return
	}
	defer s.isRefreshingPools.Store(false)

	if _, err := s.RefreshPoolInfo(s.rootCtx); err != nil {
		if s.rootCtx.Err() != nil {
			s.logger.Warn("Pool info refresh cancelled due to application shutdown")
			return
		}
		s.logger.Error("Error refreshing pool info in background", zap.Error(err))
	}
}
