// Command relay is a local stand-in for the cloud relay: it issues WRAP
// tokens and forwards authorized requests to the on-premise hosts.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/V4T54L/cloudburst/internal/adapter/api"
	"github.com/V4T54L/cloudburst/internal/adapter/wrap"
	"github.com/V4T54L/cloudburst/internal/pkg/config"
	"github.com/V4T54L/cloudburst/internal/pkg/logger"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	personUpstream, err := url.Parse(cfg.PersonUpstream)
	if err != nil {
		logger.Error("invalid person upstream", "error", err)
		os.Exit(1)
	}
	imageUpstream, err := url.Parse(cfg.ImageUpstream)
	if err != nil {
		logger.Error("invalid image upstream", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	issuer, err := wrap.NewIssuer(cfg.IssuerName, cfg.IssuerSecret, []byte(cfg.SigningKey), cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to initialize token issuer", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      api.NewGatewayRouter(issuer, issuer, personUpstream, imageUpstream, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting relay gateway", "addr", server.Addr, "person_upstream", personUpstream.String(), "image_upstream", imageUpstream.String())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("relay gateway failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down relay gateway...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("relay gateway shutdown failed", "error", err)
	}

	logger.Info("relay gateway shut down gracefully")
}
