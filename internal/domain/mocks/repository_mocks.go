package mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// MockPersonRepository is a mock implementation of domain.PersonRepository for testing.
type MockPersonRepository struct {
	mu           sync.Mutex
	People       []domain.Person
	SearchErr    error
	GetAllErr    error
	SearchedWith []string
}

func (m *MockPersonRepository) SearchByFirstName(ctx context.Context, match string) ([]domain.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchedWith = append(m.SearchedWith, match)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.People, nil
}

func (m *MockPersonRepository) GetAll(ctx context.Context) ([]domain.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllErr != nil {
		return nil, m.GetAllErr
	}
	return m.People, nil
}

// MockImageStore is a mock implementation of domain.ImageStore for testing.
type MockImageStore struct {
	Images map[string][]byte
	GetErr error
}

func (m *MockImageStore) Get(ctx context.Context, name string) (*domain.Image, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	data, ok := m.Images[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Image{
		Name:        name,
		ContentType: "image/jpeg",
		Body:        io.NopCloser(bytes.NewReader(data)),
	}, nil
}

// MockResourceClient is a mock implementation of domain.ResourceClient for testing.
// JSONBody is decoded into the caller's target so facades see real decoding.
type MockResourceClient struct {
	mu          sync.Mutex
	JSONBody    string
	StreamBody  []byte
	ContentType string
	Err         error
	URLs        []string
}

func (m *MockResourceClient) FetchJSON(ctx context.Context, url string, out any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.URLs = append(m.URLs, url)
	if m.Err != nil {
		return m.Err
	}
	return json.Unmarshal([]byte(m.JSONBody), out)
}

func (m *MockResourceClient) FetchStream(ctx context.Context, url string) (*domain.RemoteResource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.URLs = append(m.URLs, url)
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.RemoteResource{
		ContentType: m.ContentType,
		Body:        io.NopCloser(bytes.NewReader(m.StreamBody)),
	}, nil
}

// MockTokenCache is an in-process domain.TokenCache that records calls.
type MockTokenCache struct {
	mu      sync.Mutex
	Tokens  map[domain.TokenKey]domain.AccessToken
	Deleted []domain.TokenKey
	GetErr  error
}

func (m *MockTokenCache) Get(ctx context.Context, key domain.TokenKey) (domain.AccessToken, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return domain.AccessToken{}, false, m.GetErr
	}
	token, ok := m.Tokens[key]
	return token, ok, nil
}

func (m *MockTokenCache) Set(ctx context.Context, key domain.TokenKey, token domain.AccessToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Tokens == nil {
		m.Tokens = make(map[domain.TokenKey]domain.AccessToken)
	}
	m.Tokens[key] = token
	return nil
}

func (m *MockTokenCache) Delete(ctx context.Context, key domain.TokenKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Tokens, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}
