package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/V4T54L/cloudburst/internal/adapter/api/middleware"
	"github.com/V4T54L/cloudburst/internal/domain"
)

// PeopleFinder queries people through the relay. *usecase.PersonService implements it.
type PeopleFinder interface {
	Search(ctx context.Context, matchCriteria string) ([]domain.Person, error)
	All(ctx context.Context) ([]domain.Person, error)
}

// PhotoDownloader fetches photos through the relay. *usecase.ImageService implements it.
type PhotoDownloader interface {
	DownloadImage(ctx context.Context, name string) (*domain.Image, error)
}

// WebHandler serves the cloud-facing API.
type WebHandler struct {
	people PeopleFinder
	photos PhotoDownloader
	logger *slog.Logger
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(people PeopleFinder, photos PhotoDownloader, logger *slog.Logger) *WebHandler {
	return &WebHandler{people: people, photos: photos, logger: logger}
}

// SearchPeople handles GET /people?criteria=
// The criteria is forwarded as is; an empty one matches every first name.
func (h *WebHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.Search(r.Context(), r.URL.Query().Get("criteria"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if people == nil {
		people = []domain.Person{}
	}
	respondWithJSON(w, h.logger, http.StatusOK, people)
}

// ListPeople handles GET /people/all
func (h *WebHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.All(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if people == nil {
		people = []domain.Person{}
	}
	respondWithJSON(w, h.logger, http.StatusOK, people)
}

// GetPhoto handles GET /photos/{name}
func (h *WebHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when one is set, so the segment may still be escaped.
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respondWithJSON(w, h.logger, http.StatusBadRequest, map[string]string{"error": "invalid photo name"})
		return
	}

	img, err := h.photos.DownloadImage(r.Context(), name)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	defer img.Body.Close()

	writeImage(w, h.logger, img)
}

// respondWithError maps remote failures to statuses: on-premise unreachable
// is 503, a rejected token is 502, a missing photo is 404, anything else 500.
func (h *WebHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)
	h.logger.Warn("request failed",
		"path", r.URL.Path,
		"status", status,
		"request_id", middleware.RequestIDFrom(r.Context()),
		"error", err,
	)
	respondWithJSON(w, h.logger, status, map[string]string{"error": http.StatusText(status)})
}

// StatusForError returns the HTTP status the cloud API uses for err.
func StatusForError(err error) int {
	var (
		authErr      *domain.AuthenticationError
		transportErr *domain.TransportError
	)
	switch {
	case domain.IsOnPremiseUnavailable(err):
		return http.StatusServiceUnavailable
	case errors.As(err, &authErr):
		return http.StatusBadGateway
	case errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
