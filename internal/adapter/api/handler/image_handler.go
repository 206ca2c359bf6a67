package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// PhotoSource is the on-premise photo lookup. *usecase.PhotoLibrary implements it.
type PhotoSource interface {
	GetImage(ctx context.Context, name string) (*domain.Image, error)
}

// ImageHandler serves the image service contract reached through the relay.
type ImageHandler struct {
	photos PhotoSource
	logger *slog.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(photos PhotoSource, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{photos: photos, logger: logger}
}

// GetPhoto handles GET /image/photo?name=
func (h *ImageHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	img, err := h.photos.GetImage(r.Context(), r.URL.Query().Get("name"))
	switch {
	case errors.Is(err, domain.ErrInvalidName):
		http.Error(w, "Bad Request: invalid photo name", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("failed to load photo", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer img.Body.Close()

	writeImage(w, h.logger, img)
}

func writeImage(w http.ResponseWriter, logger *slog.Logger, img *domain.Image) {
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, img.Body); err != nil {
		logger.Warn("failed to stream photo", "name", img.Name, "error", err)
	}
}
