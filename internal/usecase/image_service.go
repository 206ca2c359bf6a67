package usecase

import (
	"context"
	"net/url"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// ImageService downloads photos from the on-premise image service through the relay.
type ImageService struct {
	client   domain.ResourceClient
	baseURL  string
	boundary *Boundary
}

func NewImageService(client domain.ResourceClient, baseURL string, boundary *Boundary) *ImageService {
	return &ImageService{
		client:   client,
		baseURL:  baseURL,
		boundary: boundary,
	}
}

// DownloadImage fetches the named photo. The caller must close the returned body.
func (s *ImageService) DownloadImage(ctx context.Context, name string) (*domain.Image, error) {
	target := s.baseURL + "/image/photo?" + url.Values{"name": {name}}.Encode()
	return Guard(ctx, s.boundary, "image_download", func(ctx context.Context) (*domain.Image, error) {
		res, err := s.client.FetchStream(ctx, target)
		if err != nil {
			return nil, err
		}
		return &domain.Image{Name: name, ContentType: res.ContentType, Body: res.Body}, nil
	})
}
