package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// PersonDirectory is the on-premise person lookup. *usecase.DirectoryService implements it.
type PersonDirectory interface {
	Search(ctx context.Context, match string) ([]domain.Person, error)
	All(ctx context.Context) ([]domain.Person, error)
}

// PersonHandler serves the person service contract reached through the relay.
type PersonHandler struct {
	directory PersonDirectory
	logger    *slog.Logger
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(directory PersonDirectory, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{directory: directory, logger: logger}
}

// Search handles GET /person/search?firstName=
func (h *PersonHandler) Search(w http.ResponseWriter, r *http.Request) {
	people, err := h.directory.Search(r.Context(), r.URL.Query().Get("firstName"))
	if err != nil {
		h.logger.Error("failed to search people", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, people)
}

// All handles GET /person/all
func (h *PersonHandler) All(w http.ResponseWriter, r *http.Request) {
	people, err := h.directory.All(r.Context())
	if err != nil {
		h.logger.Error("failed to list people", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, people)
}
