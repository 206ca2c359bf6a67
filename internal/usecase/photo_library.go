package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// PhotoLibrary serves stored photos on the on-premise side.
type PhotoLibrary struct {
	store  domain.ImageStore
	logger *slog.Logger
}

func NewPhotoLibrary(store domain.ImageStore, logger *slog.Logger) *PhotoLibrary {
	return &PhotoLibrary{
		store:  store,
		logger: logger.With("component", "photo_library"),
	}
}

// GetImage returns the named photo. domain.ErrNotFound and
// domain.ErrInvalidName are returned as is.
func (l *PhotoLibrary) GetImage(ctx context.Context, name string) (*domain.Image, error) {
	img, err := l.store.Get(ctx, name)
	switch {
	case err == nil:
		l.logger.Debug("photo served", "name", name, "content_type", img.ContentType)
		return img, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidName):
		l.logger.Info("photo request rejected", "name", name, "reason", err)
		return nil, err
	default:
		l.logger.Error("photo lookup failed", "name", name, "error", err)
		return nil, fmt.Errorf("get photo %q: %w", name, err)
	}
}
