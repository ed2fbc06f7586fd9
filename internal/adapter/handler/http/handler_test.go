package http

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"bridge-tokeninfo/internal/application/port"
	"bridge-tokeninfo/internal/domain"
	"bridge-tokeninfo/internal/domain/entity"
	"bridge-tokeninfo/internal/pkg/apperrors"
)

// stubService overrides the service calls a test needs; anything else panics.
type stubService struct {
	port.TokenInfoService

	chains     entity.ChainDetailsMap
	pools      entity.PoolInfoMap
	err        error
	lastPool   entity.PoolKey
	lastFeeReq entity.ReceiveTransactionCostRequest
}

func (s *stubService) GetChainDetailsMap(context.Context) (entity.ChainDetailsMap, error) {
	return s.chains, s.err
}

func (s *stubService) GetChain(_ context.Context, chainSymbol entity.ChainSymbol) (*entity.ChainDetailsWithTokens, error) {
	if s.err != nil {
		return nil, s.err
	}
	chain, ok := s.chains[chainSymbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrChainNotFound, chainSymbol)
	}
	return &chain, nil
}

func (s *stubService) GetPoolInfo(_ context.Context, key entity.PoolKey) (*entity.PoolInfo, error) {
	s.lastPool = key
	if s.err != nil {
		return nil, s.err
	}
	pool, ok := s.pools[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPoolNotFound, key)
	}
	return &pool, nil
}

func (s *stubService) GetReceiveTransactionCost(
	_ context.Context,
	req entity.ReceiveTransactionCostRequest,
) (*entity.ReceiveTransactionCost, error) {
	s.lastFeeReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &entity.ReceiveTransactionCost{Fee: "42"}, nil
}

func newRequestCtx(method string, body string, params map[string]string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	for k, v := range params {
		ctx.SetUserValue(k, v)
	}
	return ctx
}

func TestTokenInfoHandler_GetChains(t *testing.T) {
	svc := &stubService{chains: entity.ChainDetailsMap{
		"ETH": {ChainDetails: entity.ChainDetails{ChainProperties: entity.ChainProperties{ChainSymbol: "ETH", Name: "Ethereum"}}},
	}}
	h := NewTokenInfoHandler(svc, zap.NewNop())

	ctx := newRequestCtx(fasthttp.MethodGet, "", nil)
	h.GetChains(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &got))
	assert.Equal(t, "Ethereum", got["ETH"]["name"])
}

func TestTokenInfoHandler_GetChain(t *testing.T) {
	svc := &stubService{chains: entity.ChainDetailsMap{}}
	h := NewTokenInfoHandler(svc, zap.NewNop())

	t.Run("unknown chain", func(t *testing.T) {
		ctx := newRequestCtx(fasthttp.MethodGet, "", map[string]string{"chainSymbol": "XYZ"})
		h.GetChain(ctx)
		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	})

	t.Run("missing path parameter", func(t *testing.T) {
		ctx := newRequestCtx(fasthttp.MethodGet, "", nil)
		h.GetChain(ctx)
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	})
}

func TestTokenInfoHandler_GetPool(t *testing.T) {
	svc := &stubService{pools: entity.PoolInfoMap{
		"ETH_0xP": {TokenBalance: "100", VUsdBalance: "300", Imbalance: "-100.000"},
	}}
	h := NewTokenInfoHandler(svc, zap.NewNop())

	tests := []struct {
		name       string
		poolKey    string
		wantStatus int
		wantLookup entity.PoolKey
	}{
		{name: "known pool", poolKey: "ETH_0xP", wantStatus: fasthttp.StatusOK, wantLookup: "ETH_0xP"},
		{name: "unknown pool", poolKey: "ETH_0xZ", wantStatus: fasthttp.StatusNotFound, wantLookup: "ETH_0xZ"},
		{name: "malformed key", poolKey: "ETH0xP", wantStatus: fasthttp.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.lastPool = ""
			ctx := newRequestCtx(fasthttp.MethodGet, "", map[string]string{"poolKey": tt.poolKey})
			h.GetPool(ctx)

			assert.Equal(t, tt.wantStatus, ctx.Response.StatusCode())
			assert.Equal(t, tt.wantLookup, svc.lastPool)
		})
	}
}

func TestTokenInfoHandler_GetReceiveTransactionCost(t *testing.T) {
	t.Run("messenger by name", func(t *testing.T) {
		svc := &stubService{}
		h := NewTokenInfoHandler(svc, zap.NewNop())

		body := `{"sourceChainId":1,"destinationChainId":4,"messenger":"OFT","sourceToken":"0xT"}`
		ctx := newRequestCtx(fasthttp.MethodPost, body, nil)
		h.GetReceiveTransactionCost(ctx)

		assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		assert.Equal(t, entity.ReceiveTransactionCostRequest{
			SourceChainID:      1,
			DestinationChainID: 4,
			Messenger:          entity.MessengerOFT,
			SourceToken:        "0xT",
		}, svc.lastFeeReq)
		assert.JSONEq(t, `{"exchangeRate":"","fee":"42","sourceNativeTokenPrice":""}`, string(ctx.Response.Body()))
	})

	t.Run("unknown messenger", func(t *testing.T) {
		h := NewTokenInfoHandler(&stubService{}, zap.NewNop())
		ctx := newRequestCtx(fasthttp.MethodPost, `{"messenger":"PIGEON"}`, nil)
		h.GetReceiveTransactionCost(ctx)
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	})
}

func TestTokenInfoHandler_WriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "chain not found", err: domain.ErrChainNotFound, wantStatus: fasthttp.StatusNotFound},
		{name: "upstream not found", err: fmt.Errorf("%w: x", apperrors.ErrNotFound), wantStatus: fasthttp.StatusNotFound},
		{name: "oft option", err: apperrors.ErrInvalidMessengerOption, wantStatus: fasthttp.StatusBadRequest},
		{name: "timeout", err: fmt.Errorf("%w: x", apperrors.ErrTimeout), wantStatus: fasthttp.StatusGatewayTimeout},
		{name: "upstream", err: fmt.Errorf("%w: x", domain.ErrUpstreamSourceFailure), wantStatus: fasthttp.StatusBadGateway},
		{name: "other", err: fmt.Errorf("boom"), wantStatus: fasthttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTokenInfoHandler(&stubService{err: tt.err}, zap.NewNop())
			ctx := newRequestCtx(fasthttp.MethodGet, "", nil)
			h.GetChains(ctx)
			assert.Equal(t, tt.wantStatus, ctx.Response.StatusCode())
		})
	}
}
