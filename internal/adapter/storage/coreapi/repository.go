package coreapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	dto "bridge-tokeninfo/internal/adapter/storage/coreapi/dto"
	"bridge-tokeninfo/internal/config"
	"bridge-tokeninfo/internal/domain/entity"
	domainRepo "bridge-tokeninfo/internal/domain/repository"
	"bridge-tokeninfo/internal/pkg/apperrors"

	"github.com/sugawarayuuta/sonnet"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CoreAPIRepository = (*Repository)(nil)

const defaultRequestTimeout = 15 * time.Second

// Repository implements CoreAPIRepository on top of the bridge core REST API.
type Repository struct {
	client      *fasthttp.Client
	baseURL     string
	headers     map[string]string
	queryParams map[string]string
	userAgent   string
	timeout     time.Duration
	mapper      *Mapper
	logger      *zap.Logger
}

// NewRepository creates a new core API repository. Payloads are normalized with mapper.
func NewRepository(
	cfg config.CoreAPIConfig,
	userAgent string,
	mapper *Mapper,
	logger *zap.Logger,
) *Repository {
	return NewRepositoryWithClient(&fasthttp.Client{}, cfg, userAgent, mapper, logger)
}

// NewRepositoryWithClient is NewRepository with a caller-provided HTTP client.
func NewRepositoryWithClient(
	client *fasthttp.Client,
	cfg config.CoreAPIConfig,
	userAgent string,
	mapper *Mapper,
	logger *zap.Logger,
) *Repository {
	timeout := cfg.GetTimeout()
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Repository{
		client:      client,
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		headers:     cfg.Headers,
		queryParams: cfg.QueryParams,
		userAgent:   userAgent,
		timeout:     timeout,
		mapper:      mapper,
		logger:      logger.Named("CoreAPIStorage"),
	}
}

// GetTokenInfo fetches /token-info and maps it into the chain catalog and the pool registry.
func (r *Repository) GetTokenInfo(ctx context.Context) (*entity.TokenInfo, error) {
	var raw dto.ChainDetailsResponseRaw
	query := map[string]string{"filter": "all"}
	if err := r.do(ctx, fasthttp.MethodGet, "/token-info", query, nil, &raw); err != nil {
		return nil, err
	}

	info := r.mapper.ToTokenInfo(raw)
	r.logger.Info("Successfully mapped token info",
		zap.Int("rawChainCount", len(raw)),
		zap.Int("chainCount", len(info.ChainDetailsMap)),
		zap.Int("poolCount", len(info.PoolInfoMap)),
	)
	return info, nil
}

// GetPoolInfoMap posts the pool list to /pool-info and maps the result into a pool registry.
func (r *Repository) GetPoolInfoMap(ctx context.Context, pools []entity.PoolKeyObject) (entity.PoolInfoMap, error) {
	body := dto.PoolInfoRequestRaw{Pools: toPoolKeysRaw(pools)}

	var raw dto.PoolInfoResponseRaw
	if err := r.do(ctx, fasthttp.MethodPost, "/pool-info", nil, body, &raw); err != nil {
		return nil, err
	}

	poolInfoMap := r.mapper.PoolInfoResponseToPoolInfoMap(raw)
	r.logger.Debug("Successfully mapped pool info",
		zap.Int("requested", len(pools)), zap.Int("received", len(poolInfoMap)),
	)
	return poolInfoMap, nil
}

// GetPendingInfo fetches /pending-info.
func (r *Repository) GetPendingInfo(ctx context.Context) (entity.PendingInfo, error) {
	var raw dto.PendingInfoResponseRaw
	if err := r.do(ctx, fasthttp.MethodGet, "/pending-info", nil, nil, &raw); err != nil {
		return nil, err
	}
	return toPendingInfo(raw), nil
}

// GetGasBalance fetches /check/{chainSymbol}/{address}.
func (r *Repository) GetGasBalance(
	ctx context.Context,
	chainSymbol entity.ChainSymbol,
	address string,
) (*entity.GasBalance, error) {
	path := "/check/" + url.PathEscape(chainSymbol.String()) + "/" + url.PathEscape(address)

	var raw dto.GasBalanceResponseRaw
	if err := r.do(ctx, fasthttp.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return &entity.GasBalance{GasBalance: raw.GasBalance, Status: raw.Status}, nil
}

// GetTransferStatus fetches /chain/{chainSymbol}/{txId}.
func (r *Repository) GetTransferStatus(
	ctx context.Context,
	chainSymbol entity.ChainSymbol,
	txID string,
) (*entity.TransferStatus, error) {
	path := "/chain/" + url.PathEscape(chainSymbol.String()) + "/" + url.PathEscape(txID)

	var raw dto.TransferStatusResponseRaw
	if err := r.do(ctx, fasthttp.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return toTransferStatus(raw), nil
}

// GetReceiveTransactionCost posts to /receive-fee. OFT requests without a
// source token are rejected before any network call.
func (r *Repository) GetReceiveTransactionCost(
	ctx context.Context,
	req entity.ReceiveTransactionCostRequest,
) (*entity.ReceiveTransactionCost, error) {
	if err := ValidateReceiveTransactionCostRequest(req); err != nil {
		return nil, err
	}

	body := dto.ReceiveTransactionCostRequestRaw{
		SourceChainID:      req.SourceChainID,
		DestinationChainID: req.DestinationChainID,
		Messenger:          int(req.Messenger),
		SourceToken:        req.SourceToken,
	}

	var raw dto.ReceiveTransactionCostResponseRaw
	if err := r.do(ctx, fasthttp.MethodPost, "/receive-fee", nil, body, &raw); err != nil {
		return nil, err
	}
	return &entity.ReceiveTransactionCost{
		ExchangeRate:            raw.ExchangeRate,
		Fee:                     raw.Fee,
		SourceNativeTokenPrice:  raw.SourceNativeTokenPrice,
		AdminFeeShareWithExtras: raw.AdminFeeShareWithExtras,
	}, nil
}

// ValidateReceiveTransactionCostRequest checks the messenger-specific options of a fee request.
func ValidateReceiveTransactionCostRequest(req entity.ReceiveTransactionCostRequest) error {
	if !req.Messenger.IsValid() {
		return fmt.Errorf("%w: unknown messenger %d", apperrors.ErrInvalidInput, int(req.Messenger))
	}
	if req.Messenger == entity.MessengerOFT && req.SourceToken == "" {
		return fmt.Errorf("%w: for OFT sourceToken required", apperrors.ErrInvalidMessengerOption)
	}
	return nil
}

// do executes one request against the core API and decodes the JSON response into out.
func (r *Repository) do(
	ctx context.Context,
	method string,
	path string,
	query map[string]string,
	body any,
	out any,
) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	requestURL := r.baseURL + path
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("x-Sdk-Agent", r.userAgent)

	args := req.URI().QueryArgs()
	for k, v := range r.queryParams {
		args.Set(k, v)
	}
	for k, v := range query {
		args.Set(k, v)
	}

	if body != nil {
		payload, err := sonnet.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request body for %s: %v", apperrors.ErrInternal, path, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	timeout := r.timeout
	if deadline, hasDeadline := ctx.Deadline(); hasDeadline {
		requestTimeout := time.Until(deadline)
		if requestTimeout <= 0 {
			return fmt.Errorf("%w: deadline passed before request to %s: %v", apperrors.ErrTimeout, path, ctx.Err())
		}
		if requestTimeout < timeout {
			timeout = requestTimeout
		}
	}

	r.logger.Debug("Calling core API",
		zap.String("method", method),
		zap.String("url", requestURL),
		zap.Duration("timeout", timeout),
	)

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			r.logger.Warn("Core API request timed out", zap.String("path", path), zap.Duration("timeout", timeout))
			return fmt.Errorf("%w: request to %s timed out after %v: %v", apperrors.ErrTimeout, path, timeout, err)
		}
		r.logger.Error("Failed to execute request to core API", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: failed to execute request to %s: %v", apperrors.ErrExternalServiceFailure, path, err)
	}

	responseBody, err := r.responseBody(resp)
	if err != nil {
		r.logger.Error("Failed to gunzip core API response body", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: failed to decompress response from %s: %v", apperrors.ErrExternalServiceFailure, path, err)
	}

	if resp.StatusCode() == fasthttp.StatusNotFound {
		r.logger.Warn("Core API reported not found",
			zap.String("path", path),
			zap.ByteString("body", responseBody[:min(1024, len(responseBody))]),
		)
		return fmt.Errorf("%w: core API reported not found (%s)", apperrors.ErrNotFound, path)
	}

	if resp.StatusCode() < fasthttp.StatusOK || resp.StatusCode() >= fasthttp.StatusMultipleChoices {
		r.logger.Error("Core API returned non-OK status",
			zap.String("path", path),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("body", responseBody[:min(1024, len(responseBody))]),
		)
		return fmt.Errorf("%w: core API returned status %d for %s",
			apperrors.ErrExternalServiceFailure, resp.StatusCode(), path,
		)
	}

	if err := sonnet.Unmarshal(responseBody, out); err != nil {
		r.logger.Error("Failed to unmarshal core API response into raw DTOs",
			zap.String("path", path),
			zap.Error(err),
			zap.ByteString("bodySample", responseBody[:min(1024, len(responseBody))]),
		)
		return fmt.Errorf("%w: failed to parse response from %s: %v", apperrors.ErrExternalServiceFailure, path, err)
	}

	return nil
}

func (r *Repository) responseBody(resp *fasthttp.Response) ([]byte, error) {
	if bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		return resp.BodyGunzip()
	}
	return resp.Body(), nil
}
