package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/V4T54L/cloudburst/internal/adapter/api"
	"github.com/V4T54L/cloudburst/internal/adapter/host"
	"github.com/V4T54L/cloudburst/internal/adapter/repository/filesystem"
	"github.com/V4T54L/cloudburst/internal/adapter/repository/postgres"
	"github.com/V4T54L/cloudburst/internal/pkg/config"
	"github.com/V4T54L/cloudburst/internal/pkg/logger"
	"github.com/V4T54L/cloudburst/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.LoadOnPrem()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Warn("postgres not reachable yet, person queries will fail until it is", "error", err)
	}

	// --- Initialize Services ---
	directory := usecase.NewDirectoryService(postgres.NewPersonRepository(db, logger), logger)
	photos := usecase.NewPhotoLibrary(filesystem.NewImageStore(cfg.ImageDir, logger), logger)

	hosts := host.NewGroup(logger,
		host.New("person", cfg.PersonHostAddr, api.NewPersonRouter(directory, logger), logger),
		host.New("image", cfg.ImageHostAddr, api.NewImageRouter(photos, logger), logger),
	)

	logger.Info("opening service hosts")
	if err := hosts.Open(ctx); err != nil {
		logger.Error("failed to open service hosts", "error", err)
		os.Exit(1)
	}

	// --- Wait for shutdown signal or host failure ---
	select {
	case <-ctx.Done():
	case err := <-hosts.Errors():
		logger.Error("service host stopped", "error", err)
	}
	logger.Info("shutting down service hosts...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := hosts.Shutdown(shutdownCtx); err != nil {
		logger.Error("service host shutdown failed", "error", err)
	}

	logger.Info("service hosts shut down gracefully")
}
