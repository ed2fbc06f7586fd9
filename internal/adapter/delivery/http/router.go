package http

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	handler "bridge-tokeninfo/internal/adapter/handler/http"
)

// NewRouter creates a router with every application route registered.
func NewRouter(h *handler.TokenInfoHandler, logger *zap.Logger) *router.Router {
	r := router.New()
	RegisterRoutes(r, h, logger)
	return r
}

// RegisterRoutes sets up the routes for the token info handler and common health checks.
func RegisterRoutes(r *router.Router, h *handler.TokenInfoHandler, logger *zap.Logger) {
	logger.Info("Setting up application-specific routes...")

	r.GET("/chains", h.GetChains)
	r.GET("/chains/{chainSymbol}", h.GetChain)
	r.GET("/tokens", h.GetTokens)
	r.GET("/pools", h.GetPools)
	r.GET("/pools/{poolKey}", h.GetPool)
	r.POST("/pools/refresh", h.RefreshPools)
	r.GET("/pending-info", h.GetPendingInfo)
	r.GET("/gas-balance/{chainSymbol}/{address}", h.GetGasBalance)
	r.GET("/transfers/{chainSymbol}/{txId}", h.GetTransferStatus)
	r.POST("/receive-fee", h.GetReceiveTransactionCost)

	logger.Info("Setting up health check route...")
	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})

	logger.Info("All routes registered.")
}

// LoggingMiddleware logs every incoming request.
func LoggingMiddleware(next fasthttp.RequestHandler, logger *zap.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		logger.Info("Request received",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()))
		next(ctx)
	}
}
