package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/V4T54L/cloudburst/internal/adapter/api/handler"
	"github.com/V4T54L/cloudburst/internal/adapter/api/middleware"
)

// NewGatewayRouter creates the router for the development relay: a WRAP token
// endpoint plus authenticated forwarding to the on-premise hosts.
func NewGatewayRouter(
	issuer handler.TokenIssuer,
	verifier middleware.TokenVerifier,
	personUpstream, imageUpstream *url.URL,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	authMiddleware := middleware.Auth(verifier, logger)

	mux.Handle("POST /WRAPv0.9", handler.NewWrapHandler(issuer, logger))
	mux.Handle("/person/", authMiddleware(handler.NewProxyHandler(personUpstream, logger)))
	mux.Handle("/image/", authMiddleware(handler.NewProxyHandler(imageUpstream, logger)))
	mux.HandleFunc("GET /health", handler.HealthCheck)

	return middleware.RequestID(middleware.Logging(logger)(mux))
}
