package http

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"bridge-tokeninfo/internal/application/port"
	"bridge-tokeninfo/internal/domain"
	"bridge-tokeninfo/internal/domain/entity"
	"bridge-tokeninfo/internal/pkg/apperrors"
)

// TokenInfoHandler serves the normalized bridge snapshot over HTTP.
type TokenInfoHandler struct {
	service port.TokenInfoService
	logger  *zap.Logger
}

func NewTokenInfoHandler(service port.TokenInfoService, logger *zap.Logger) *TokenInfoHandler {
	return &TokenInfoHandler{
		service: service,
		logger:  logger.Named("TokenInfoHandler"),
	}
}

// GetChains handles requests for the chain catalog.
func (h *TokenInfoHandler) GetChains(ctx *fasthttp.RequestCtx) {
	chains, err := h.service.GetChainDetailsMap(ctx)
	if err != nil {
		h.writeError(ctx, "Failed to get chains", err)
		return
	}
	h.writeJSON(ctx, chains)
}

// GetChain handles requests for a single chain.
func (h *TokenInfoHandler) GetChain(ctx *fasthttp.RequestCtx) {
	chainSymbol, ok := h.pathParam(ctx, "chainSymbol")
	if !ok {
		return
	}
	chain, err := h.service.GetChain(ctx, entity.ChainSymbol(chainSymbol))
	if err != nil {
		h.writeError(ctx, "Failed to get chain", err, zap.String("chainSymbol", chainSymbol))
		return
	}
	h.writeJSON(ctx, chain)
}

// GetTokens handles requests for the flattened token list.
func (h *TokenInfoHandler) GetTokens(ctx *fasthttp.RequestCtx) {
	tokens, err := h.service.GetTokens(ctx)
	if err != nil {
		h.writeError(ctx, "Failed to get tokens", err)
		return
	}
	h.writeJSON(ctx, tokens)
}

// GetPools handles requests for the pool registry.
func (h *TokenInfoHandler) GetPools(ctx *fasthttp.RequestCtx) {
	pools, err := h.service.GetPoolInfoMap(ctx)
	if err != nil {
		h.writeError(ctx, "Failed to get pools", err)
		return
	}
	h.writeJSON(ctx, pools)
}

// GetPool handles requests for a single pool addressed by its pool key.
func (h *TokenInfoHandler) GetPool(ctx *fasthttp.RequestCtx) {
	rawKey, ok := h.pathParam(ctx, "poolKey")
	if !ok {
		return
	}
	poolKey, err := entity.ParsePoolKey(rawKey)
	if err != nil {
		h.logger.Debug("Rejecting malformed pool key", zap.String("poolKey", rawKey), zap.Error(err))
		ctx.Error("Bad Request: Invalid poolKey", fasthttp.StatusBadRequest)
		return
	}

	pool, err := h.service.GetPoolInfo(ctx, poolKey.Key())
	if err != nil {
		h.writeError(ctx, "Failed to get pool", err, zap.String("poolKey", rawKey))
		return
	}
	h.writeJSON(ctx, pool)
}

// RefreshPools handles requests to refresh the pool registry from the core API.
func (h *TokenInfoHandler) RefreshPools(ctx *fasthttp.RequestCtx) {
	pools, err := h.service.RefreshPoolInfo(ctx)
	if err != nil {
		h.writeError(ctx, "Failed to refresh pools", err)
		return
	}
	h.writeJSON(ctx, pools)
}

// GetPendingInfo handles requests for pending transfers.
func (h *TokenInfoHandler) GetPendingInfo(ctx *fasthttp.RequestCtx) {
	pending, err := h.service.GetPendingInfo(ctx)
	if err != nil {
		h.writeError(ctx, "Failed to get pending info", err)
		return
	}
	h.writeJSON(ctx, pending)
}

// GetGasBalance handles requests for the gas balance of an address.
func (h *TokenInfoHandler) GetGasBalance(ctx *fasthttp.RequestCtx) {
	chainSymbol, ok := h.pathParam(ctx, "chainSymbol")
	if !ok {
		return
	}
	address, ok := h.pathParam(ctx, "address")
	if !ok {
		return
	}
	balance, err := h.service.GetGasBalance(ctx, entity.ChainSymbol(chainSymbol), address)
	if err != nil {
		h.writeError(ctx, "Failed to get gas balance", err, zap.String("chainSymbol", chainSymbol))
		return
	}
	h.writeJSON(ctx, balance)
}

// GetTransferStatus handles requests for the status of a transfer.
func (h *TokenInfoHandler) GetTransferStatus(ctx *fasthttp.RequestCtx) {
	chainSymbol, ok := h.pathParam(ctx, "chainSymbol")
	if !ok {
		return
	}
	txID, ok := h.pathParam(ctx, "txId")
	if !ok {
		return
	}
	status, err := h.service.GetTransferStatus(ctx, entity.ChainSymbol(chainSymbol), txID)
	if err != nil {
		h.writeError(ctx, "Failed to get transfer status", err,
			zap.String("chainSymbol", chainSymbol), zap.String("txId", txID),
		)
		return
	}
	h.writeJSON(ctx, status)
}

// GetReceiveTransactionCost handles fee quote requests. The messenger is given by name, e.g. "OFT".
func (h *TokenInfoHandler) GetReceiveTransactionCost(ctx *fasthttp.RequestCtx) {
	var req entity.ReceiveTransactionCostRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.logger.Debug("Failed to decode receive fee request", zap.Error(err))
		ctx.Error("Bad Request: Invalid request body", fasthttp.StatusBadRequest)
		return
	}
	cost, err := h.service.GetReceiveTransactionCost(ctx, req)
	if err != nil {
		h.writeError(ctx, "Failed to get receive transaction cost", err)
		return
	}
	h.writeJSON(ctx, cost)
}

func (h *TokenInfoHandler) pathParam(ctx *fasthttp.RequestCtx, name string) (string, bool) {
	value, ok := ctx.UserValue(name).(string)
	if !ok || value == "" {
		h.logger.Error("Failed to get path parameter from context", zap.String("name", name))
		ctx.Error("Bad Request: Invalid "+name, fasthttp.StatusBadRequest)
		return "", false
	}
	return value, true
}

// writeError maps domain and application errors to HTTP status codes.
func (h *TokenInfoHandler) writeError(ctx *fasthttp.RequestCtx, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	switch {
	case errors.Is(err, domain.ErrChainNotFound),
		errors.Is(err, domain.ErrPoolNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		h.logger.Warn(msg, fields...)
		ctx.Error("Not Found", fasthttp.StatusNotFound)
	case errors.Is(err, apperrors.ErrInvalidMessengerOption),
		errors.Is(err, apperrors.ErrInvalidInput):
		h.logger.Warn(msg, fields...)
		ctx.Error("Bad Request: "+err.Error(), fasthttp.StatusBadRequest)
	case errors.Is(err, apperrors.ErrTimeout):
		h.logger.Error(msg, fields...)
		ctx.Error("Gateway Timeout", fasthttp.StatusGatewayTimeout)
	case errors.Is(err, domain.ErrUpstreamSourceFailure),
		errors.Is(err, apperrors.ErrExternalServiceFailure):
		h.logger.Error(msg, fields...)
		ctx.Error("Bad Gateway", fasthttp.StatusBadGateway)
	default:
		h.logger.Error(msg, fields...)
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
	}
}

func (h *TokenInfoHandler) writeJSON(ctx *fasthttp.RequestCtx, v any) {
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		// Response already started, can't set error code
	}
}
