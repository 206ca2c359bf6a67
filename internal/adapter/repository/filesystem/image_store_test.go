package filesystem

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/V4T54L/cloudburst/internal/domain"
)

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0xFF, 0xD9}

func setupStore(t *testing.T) *ImageStore {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "photo1.jpg"), jpegHeader, 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.jpg"), []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return NewImageStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImageStore_Get(t *testing.T) {
	store := setupStore(t)

	img, err := store.Get(context.Background(), "photo1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer img.Body.Close()

	data, err := io.ReadAll(img.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(data) != string(jpegHeader) {
		t.Error("image bytes were altered")
	}
	if img.ContentType != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", img.ContentType)
	}
	if img.Name != "photo1" {
		t.Errorf("expected name photo1, got %q", img.Name)
	}
}

func TestImageStore_FallbackContentType(t *testing.T) {
	store := setupStore(t)

	img, err := store.Get(context.Background(), "notes")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if img.ContentType != "image/jpeg" {
		t.Errorf("expected fallback image/jpeg, got %q", img.ContentType)
	}
}

func TestImageStore_Errors(t *testing.T) {
	store := setupStore(t)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"Missing image", "nobody", domain.ErrNotFound},
		{"Empty name", "", domain.ErrInvalidName},
		{"Parent traversal", "../etc/passwd", domain.ErrInvalidName},
		{"Dot dot", "..", domain.ErrInvalidName},
		{"Subdirectory", "a/b", domain.ErrInvalidName},
		{"Backslash", `a\b`, domain.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Get(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Get(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
