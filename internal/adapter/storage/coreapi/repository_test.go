package coreapi

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"

	"bridge-tokeninfo/internal/config"
	"bridge-tokeninfo/internal/domain/entity"
	"bridge-tokeninfo/internal/pkg/apperrors"
)

type recordedRequest struct {
	method      string
	path        string
	query       map[string]string
	headers     map[string]string
	contentType string
	body        []byte
}

// fakeCoreAPI serves canned responses over an in-memory listener and records requests.
type fakeCoreAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakeCoreAPI) handle(ctx *fasthttp.RequestCtx) {
	rec := recordedRequest{
		method:      string(ctx.Method()),
		path:        string(ctx.Path()),
		query:       map[string]string{},
		headers:     map[string]string{},
		contentType: string(ctx.Request.Header.ContentType()),
		body:        append([]byte(nil), ctx.PostBody()...),
	}
	ctx.QueryArgs().VisitAll(func(k, v []byte) { rec.query[string(k)] = string(v) })
	ctx.Request.Header.VisitAll(func(k, v []byte) { rec.headers[string(k)] = string(v) })

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	status, body := f.status, f.body
	f.mu.Unlock()

	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(body)
}

func (f *fakeCoreAPI) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *fakeCoreAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestRepository(t *testing.T, status int, body string) (*Repository, *fakeCoreAPI) {
	t.Helper()

	api := &fakeCoreAPI{status: status, body: body}
	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: api.handle}
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	client := &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
	cfg := config.CoreAPIConfig{
		URL:         "http://core-api.test/",
		Headers:     map[string]string{"X-Api-Key": "secret"},
		QueryParams: map[string]string{"network": "mainnet"},
		Timeout:     5 * time.Second,
	}
	repo := NewRepositoryWithClient(client, cfg, "bridge-tokeninfo/test", newTestMapper(), zap.NewNop())
	return repo, api
}

func TestRepository_GetTokenInfo(t *testing.T) {
	repo, api := newTestRepository(t, fasthttp.StatusOK, tokenInfoFixture)

	info, err := repo.GetTokenInfo(context.Background())
	require.NoError(t, err)

	req := api.lastRequest(t)
	assert.Equal(t, fasthttp.MethodGet, req.method)
	assert.Equal(t, "/token-info", req.path)
	assert.Equal(t, "all", req.query["filter"])
	assert.Equal(t, "mainnet", req.query["network"])
	assert.Equal(t, "application/json", req.headers["Accept"])
	assert.Equal(t, "secret", req.headers["X-Api-Key"])
	assert.Equal(t, "bridge-tokeninfo/test", req.headers["X-Sdk-Agent"])

	require.Len(t, info.ChainDetailsMap, 1)
	require.Contains(t, info.ChainDetailsMap, entity.ChainSymbol("ETH"))
	assert.Equal(t, "Ethereum", info.ChainDetailsMap["ETH"].Tokens[0].ChainName)

	require.Len(t, info.PoolInfoMap, 2)
	assert.Equal(t, "-100.000", info.PoolInfoMap["ETH_0xP"].Imbalance)
	assert.Contains(t, info.PoolInfoMap, entity.PoolKey("XYZ_0xQ"))
}

func TestRepository_GetPoolInfoMap(t *testing.T) {
	body := `{"ETH":{"0xP1":{"tokenBalance":"10","vUsdBalance":"2","imbalance":"123","p":52}}}`
	repo, api := newTestRepository(t, fasthttp.StatusOK, body)

	pools, err := repo.GetPoolInfoMap(context.Background(), []entity.PoolKeyObject{
		{ChainSymbol: "ETH", PoolAddress: "0xP1"},
		{ChainSymbol: "ETH", PoolAddress: "0xP2"},
	})
	require.NoError(t, err)

	req := api.lastRequest(t)
	assert.Equal(t, fasthttp.MethodPost, req.method)
	assert.Equal(t, "/pool-info", req.path)
	assert.Equal(t, "application/json", req.contentType)
	assert.JSONEq(t,
		`{"pools":[{"chainSymbol":"ETH","poolAddress":"0xP1"},{"chainSymbol":"ETH","poolAddress":"0xP2"}]}`,
		string(req.body),
	)

	require.Len(t, pools, 1)
	assert.Equal(t, "4.000", pools["ETH_0xP1"].Imbalance)
}

func TestRepository_GetReceiveTransactionCost(t *testing.T) {
	t.Run("OFTWithoutSourceTokenFailsBeforeRequest", func(t *testing.T) {
		repo, api := newTestRepository(t, fasthttp.StatusOK, `{}`)

		_, err := repo.GetReceiveTransactionCost(context.Background(), entity.ReceiveTransactionCostRequest{
			SourceChainID:      1,
			DestinationChainID: 2,
			Messenger:          entity.MessengerOFT,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidMessengerOption)
		assert.Equal(t, 0, api.requestCount())
	})

	t.Run("UnknownMessengerFailsBeforeRequest", func(t *testing.T) {
		repo, api := newTestRepository(t, fasthttp.StatusOK, `{}`)

		_, err := repo.GetReceiveTransactionCost(context.Background(), entity.ReceiveTransactionCostRequest{
			Messenger: entity.Messenger(9),
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, 0, api.requestCount())
	})

	t.Run("SendsNumericMessenger", func(t *testing.T) {
		body := `{"exchangeRate":"0.5","fee":"1000","sourceNativeTokenPrice":"3000","adminFeeShareWithExtras":"0.1"}`
		repo, api := newTestRepository(t, fasthttp.StatusCreated, body)

		cost, err := repo.GetReceiveTransactionCost(context.Background(), entity.ReceiveTransactionCostRequest{
			SourceChainID:      1,
			DestinationChainID: 4,
			Messenger:          entity.MessengerOFT,
			SourceToken:        "0xT",
		})
		require.NoError(t, err)

		req := api.lastRequest(t)
		assert.Equal(t, "/receive-fee", req.path)
		var sent map[string]any
		require.NoError(t, json.Unmarshal(req.body, &sent))
		assert.EqualValues(t, 5, sent["messenger"])
		assert.Equal(t, "0xT", sent["sourceToken"])

		assert.Equal(t, &entity.ReceiveTransactionCost{
			ExchangeRate:            "0.5",
			Fee:                     "1000",
			SourceNativeTokenPrice:  "3000",
			AdminFeeShareWithExtras: "0.1",
		}, cost)
	})
}

func TestRepository_PassThroughEndpoints(t *testing.T) {
	t.Run("GetPendingInfo", func(t *testing.T) {
		body := `{"ETH":{"0xT":{"pendingTxs":3,"pendingAmount":{"int":"3000000","float":"3"}}}}`
		repo, api := newTestRepository(t, fasthttp.StatusOK, body)

		pending, err := repo.GetPendingInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/pending-info", api.lastRequest(t).path)
		assert.Equal(t, entity.PendingInfo{
			"ETH": {"0xT": {PendingTxs: 3, PendingAmount: entity.PendingAmount{Int: "3000000", Float: "3"}}},
		}, pending)
	})

	t.Run("GetGasBalance", func(t *testing.T) {
		repo, api := newTestRepository(t, fasthttp.StatusOK, `{"gasBalance":"12.5","status":"OK"}`)

		balance, err := repo.GetGasBalance(context.Background(), "SOL", "Addr1")
		require.NoError(t, err)
		assert.Equal(t, "/check/SOL/Addr1", api.lastRequest(t).path)
		require.NotNil(t, balance.GasBalance)
		assert.Equal(t, "12.5", *balance.GasBalance)
		assert.Equal(t, "OK", balance.Status)
	})

	t.Run("GetTransferStatus", func(t *testing.T) {
		body := `{
			"txId": "0xtx",
			"sourceChainSymbol": "ETH",
			"destinationChainSymbol": "TRX",
			"sendAmount": "1000000",
			"signaturesCount": 1,
			"signaturesNeeded": 2,
			"send": {"txId": "0xtx", "blockTime": 1700000000, "blockId": "19000000", "confirmations": 12, "confirmationsNeeded": 12},
			"responseTime": 1700000100
		}`
		repo, api := newTestRepository(t, fasthttp.StatusOK, body)

		status, err := repo.GetTransferStatus(context.Background(), "ETH", "0xtx")
		require.NoError(t, err)
		assert.Equal(t, "/chain/ETH/0xtx", api.lastRequest(t).path)
		assert.Equal(t, entity.ChainSymbol("TRX"), status.DestinationChainSymbol)
		assert.Equal(t, 12, status.Send.Confirmations)
		assert.Nil(t, status.Receive)
	})
}

func TestRepository_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: fasthttp.StatusNotFound, body: `{"message":"nope"}`, wantErr: apperrors.ErrNotFound},
		{name: "server error", status: fasthttp.StatusInternalServerError, body: `oops`, wantErr: apperrors.ErrExternalServiceFailure},
		{name: "invalid json", status: fasthttp.StatusOK, body: `{"ETH":`, wantErr: apperrors.ErrExternalServiceFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newTestRepository(t, tt.status, tt.body)

			_, err := repo.GetTokenInfo(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("expired context", func(t *testing.T) {
		repo, api := newTestRepository(t, fasthttp.StatusOK, tokenInfoFixture)

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := repo.GetTokenInfo(ctx)
		assert.ErrorIs(t, err, apperrors.ErrTimeout)
		assert.Equal(t, 0, api.requestCount())
	})
}
