package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"bridge-tokeninfo/internal/adapter/calculation"
	"bridge-tokeninfo/internal/adapter/chains"
	delivery "bridge-tokeninfo/internal/adapter/delivery/http"
	handler "bridge-tokeninfo/internal/adapter/handler/http"
	"bridge-tokeninfo/internal/adapter/storage/coreapi"
	"bridge-tokeninfo/internal/adapter/storage/memory"
	"bridge-tokeninfo/internal/application"
	"bridge-tokeninfo/internal/config"
	"bridge-tokeninfo/internal/logger"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	zapLogger, err := logger.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer zapLogger.Sync() // Ensure logs are flushed before exiting
	zapLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Manual) ---
	zapLogger.Info("Initializing dependencies...")

	registry, err := chains.LoadRegistry(cfg.Chains.RegistryPath)
	if err != nil {
		zapLogger.Fatal("Failed to load chain registry", zap.String("path", cfg.Chains.RegistryPath), zap.Error(err))
	}
	zapLogger.Info("Chain registry loaded", zap.Int("chainCount", len(registry.Symbols())))

	// Repositories
	mapper := coreapi.NewMapper(registry, calculation.PoolImbalance, zapLogger)
	coreRepo := coreapi.NewRepository(cfg.CoreAPI, cfg.App.UserAgent(), mapper, zapLogger)
	cacheRepo := memory.NewCacheRepository(cfg.Cache, zapLogger)

	// Services
	tokenInfoService := application.NewTokenInfoService(rootCtx, coreRepo, cacheRepo, zapLogger, *cfg)

	// Handlers
	tokenInfoHandler := handler.NewTokenInfoHandler(tokenInfoService, zapLogger)

	// --- HTTP Router & Server ---
	zapLogger.Info("Setting up HTTP router...")
	r := delivery.NewRouter(tokenInfoHandler, zapLogger)

	server := &fasthttp.Server{
		Handler: delivery.LoggingMiddleware(r.Handler, zapLogger),
		Name:    cfg.App.Name,
	}

	go func() {
		<-rootCtx.Done()
		zapLogger.Info("Shutting down HTTP server...")
		if err := server.Shutdown(); err != nil {
			zapLogger.Error("Failed to shut down HTTP server", zap.Error(err))
		}
	}()

	serverAddr := ":" + cfg.Server.Port
	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr))

	if err := server.ListenAndServe(serverAddr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
