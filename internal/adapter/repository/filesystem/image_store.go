package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/V4T54L/cloudburst/internal/domain"
)

const (
	imageExt           = ".jpg"
	defaultContentType = "image/jpeg"
)

// ImageStore implements domain.ImageStore over a directory of <name>.jpg files.
type ImageStore struct {
	dir    string
	logger *slog.Logger
}

// NewImageStore creates an ImageStore rooted at dir.
func NewImageStore(dir string, logger *slog.Logger) *ImageStore {
	return &ImageStore{dir: dir, logger: logger.With("component", "image_store")}
}

// Get reads the named image fully into memory. Names that would leave the
// store directory are rejected with domain.ErrInvalidName.
func (s *ImageStore) Get(ctx context.Context, name string) (*domain.Image, error) {
	if !validName(name) {
		return nil, fmt.Errorf("image %q: %w", name, domain.ErrInvalidName)
	}

	path := filepath.Join(s.dir, name+imageExt)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("image %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read image %q: %w", name, err)
	}

	contentType := defaultContentType
	if mt := mimetype.Detect(data); strings.HasPrefix(mt.String(), "image/") {
		contentType = mt.String()
	}

	s.logger.Debug("loaded image", "name", name, "bytes", len(data), "content_type", contentType)
	return &domain.Image{
		Name:        name,
		ContentType: contentType,
		Body:        io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..") && !strings.ContainsRune(name, 0)
}
