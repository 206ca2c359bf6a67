package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"

	"github.com/V4T54L/cloudburst/internal/adapter/api/handler"
	"github.com/V4T54L/cloudburst/internal/adapter/api/middleware"
)

// NewCloudRouter creates the chi router for the cloud web application.
// Responses are gzip-compressed for clients that accept it.
func NewCloudRouter(people handler.PeopleFinder, photos handler.PhotoDownloader, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	web := handler.NewWebHandler(people, photos, logger)

	r.Get("/health", handler.HealthCheck)
	r.Route("/people", func(r chi.Router) {
		r.Get("/", web.SearchPeople)
		r.Get("/all", web.ListPeople)
	})
	r.Get("/photos/{name}", web.GetPhoto)

	return gzhttp.GzipHandler(r)
}
