package domain

import (
	"context"
	"io"
)

// RemoteResource is a fully buffered response body fetched through the relay.
type RemoteResource struct {
	ContentType string
	Body        io.ReadCloser
}

// ResourceClient fetches resources exposed by the on-premise tier.
type ResourceClient interface {
	// FetchJSON issues a GET and decodes the JSON response body into out.
	FetchJSON(ctx context.Context, url string, out any) error

	// FetchStream issues a GET and returns the raw response body.
	FetchStream(ctx context.Context, url string) (*RemoteResource, error)
}
