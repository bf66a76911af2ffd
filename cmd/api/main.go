package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/controllers"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/api/routes"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/cart"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/catalog"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/internal/stores"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/config"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/env"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/metrics"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/migrate"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	var redisClient *redis.Client
	switch {
	case !cfg.FeatureFlags.PricingCache:
		logg.Info(ctx, "pricing config cache disabled")
	case cfg.Redis.URL == "" && cfg.Redis.Address == "":
		logg.Warn(ctx, "pricing config cache enabled but no redis configured, serving from database")
	default:
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	storeParams := stores.ServiceParams{
		Repo:            stores.NewRepository(dbClient.DB()),
		Tx:              dbClient,
		CacheTTL:        cfg.Pricing.ConfigCacheTTL,
		DefaultCurrency: cfg.Pricing.Currency(),
		Logger:          logg,
		Metrics:         pricingMetrics,
	}
	readiness := map[string]controllers.Pinger{"db": dbClient}
	if redisClient != nil {
		storeParams.Cache = redisClient
		readiness["redis"] = redisClient
	}

	storeService, err := stores.NewService(storeParams)
	if err != nil {
		logg.Error(ctx, "failed to create pricing config service", err)
		os.Exit(1)
	}
	configLoader := stores.NewFallbackLoader(storeService, logg, pricingMetrics)
	productRepo := catalog.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(productRepo, configLoader, pricingMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Products: productRepo,
		Configs:  configLoader,
		Logger:   logg,
		Metrics:  pricingMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, registry, pricingMetrics, readiness, storeService, catalogService, cartService),
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(runCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(runCtx, "graceful shutdown failed", err)
		exitCode = 1
	}

	if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
		logg.Error(runCtx, "error closing resources", err)
		exitCode = 1
	}

	logg.Info(runCtx, "api server stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
