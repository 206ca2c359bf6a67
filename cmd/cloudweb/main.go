package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/V4T54L/cloudburst/internal/adapter/api"
	"github.com/V4T54L/cloudburst/internal/adapter/api/handler"
	"github.com/V4T54L/cloudburst/internal/adapter/metrics"
	"github.com/V4T54L/cloudburst/internal/adapter/relay"
	"github.com/V4T54L/cloudburst/internal/adapter/repository/memory"
	redisrepo "github.com/V4T54L/cloudburst/internal/adapter/repository/redis"
	"github.com/V4T54L/cloudburst/internal/adapter/wrap"
	"github.com/V4T54L/cloudburst/internal/domain"
	"github.com/V4T54L/cloudburst/internal/pkg/config"
	"github.com/V4T54L/cloudburst/internal/pkg/logger"
	"github.com/V4T54L/cloudburst/internal/usecase"
)

func main() {
	cfg, err := config.LoadCloud()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.NewRelayMetrics()

	// --- Start Metrics Server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("GET /health", handler.HealthCheck)

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("starting metrics server", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Token Cache ---
	var cache domain.TokenCache
	switch cfg.TokenCache {
	case "memory":
		cache = memory.NewTokenCache()
	case "redis":
		redisOpts, err := redis.ParseURL(cfg.RedisAddr)
		if err != nil {
			logger.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("could not connect to redis, tokens will be acquired per request until it recovers", "error", err)
		}
		cache = redisrepo.NewTokenCache(redisClient, logger)
	}
	logger.Info("token cache configured", "mode", cfg.TokenCache)

	// --- Relay Client ---
	httpClient := &http.Client{Timeout: cfg.Relay.RequestTimeout}
	tokens := wrap.NewTokenProvider(httpClient, cfg.Relay.TokenEndpoint, cfg.Relay.TokenScope, logger)
	client := relay.NewClient(relay.Options{
		HTTPClient: httpClient,
		Scheme:     cfg.Relay.Scheme,
		Credentials: domain.Credentials{
			ServiceNamespaceHost: cfg.Relay.BaseAddress,
			IssuerName:           cfg.Relay.IssuerName,
			IssuerSecret:         cfg.Relay.IssuerSecret,
		},
		RequireAuth: cfg.Relay.RequireAuth,
		RateLimit:   cfg.Relay.RateLimit,
		RateBurst:   cfg.Relay.RateBurst,
		CacheSkew:   cfg.TokenCacheSkew,
	}, tokens, cache, m, logger)

	// --- Initialize Use Cases ---
	boundary := usecase.NewBoundary(m, logger)
	people := usecase.NewPersonService(client, client.BaseURL(), boundary)
	photos := usecase.NewImageService(client, client.BaseURL(), boundary)

	// --- Initialize Web Server ---
	webServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      api.NewCloudRouter(people, photos, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Relay.RequestTimeout + 10*time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting web server", "addr", webServer.Addr, "relay", client.BaseURL(), "namespace", client.Namespace())
		if err := webServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("web server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
