package domain

import (
	"context"
	"io"
)

// Image is a photo resolved by name, together with its content type.
type Image struct {
	Name        string
	ContentType string
	Body        io.ReadCloser
}

// ImageStore resolves photos by their lookup name.
type ImageStore interface {
	Get(ctx context.Context, name string) (*Image, error)
}
