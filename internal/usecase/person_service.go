package usecase

import (
	"context"
	"net/url"

	"github.com/V4T54L/cloudburst/internal/adapter/relay"
	"github.com/V4T54L/cloudburst/internal/domain"
)

// PersonService queries the on-premise person service through the relay.
type PersonService struct {
	client   domain.ResourceClient
	baseURL  string
	boundary *Boundary
}

// NewPersonService creates a PersonService. baseURL is scheme://baseAddress.
func NewPersonService(client domain.ResourceClient, baseURL string, boundary *Boundary) *PersonService {
	return &PersonService{
		client:   client,
		baseURL:  baseURL,
		boundary: boundary,
	}
}

// Search returns the people whose first name matches matchCriteria.
func (s *PersonService) Search(ctx context.Context, matchCriteria string) ([]domain.Person, error) {
	target := s.baseURL + "/person/search?" + url.Values{"firstName": {matchCriteria}}.Encode()
	return Guard(ctx, s.boundary, "person_search", func(ctx context.Context) ([]domain.Person, error) {
		return relay.FetchTyped[[]domain.Person](ctx, s.client, target)
	})
}

// All returns the first page of people.
func (s *PersonService) All(ctx context.Context) ([]domain.Person, error) {
	target := s.baseURL + "/person/all"
	return Guard(ctx, s.boundary, "person_all", func(ctx context.Context) ([]domain.Person, error) {
		return relay.FetchTyped[[]domain.Person](ctx, s.client, target)
	})
}
