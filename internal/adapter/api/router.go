package api

import (
	"log/slog"
	"net/http"

	"github.com/V4T54L/cloudburst/internal/adapter/api/handler"
	"github.com/V4T54L/cloudburst/internal/adapter/api/middleware"
)

// NewPersonRouter creates the HTTP router for the on-premise person service.
func NewPersonRouter(directory handler.PersonDirectory, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	personHandler := handler.NewPersonHandler(directory, logger)

	mux.HandleFunc("GET /person/search", personHandler.Search)
	mux.HandleFunc("GET /person/all", personHandler.All)
	mux.HandleFunc("GET /health", handler.HealthCheck)

	return middleware.Logging(logger)(mux)
}

// NewImageRouter creates the HTTP router for the on-premise image service.
func NewImageRouter(photos handler.PhotoSource, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	imageHandler := handler.NewImageHandler(photos, logger)

	mux.HandleFunc("GET /image/photo", imageHandler.GetPhoto)
	mux.HandleFunc("GET /health", handler.HealthCheck)

	return middleware.Logging(logger)(mux)
}
