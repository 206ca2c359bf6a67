package memory

import (
	"context"
	"sync"
	"time"

	"github.com/V4T54L/cloudburst/internal/domain"
)

// TokenCache implements domain.TokenCache in process memory. Entries expire at
// the token's own ExpiresAt; tokens without a lifetime are not stored.
type TokenCache struct {
	mu     sync.RWMutex
	tokens map[domain.TokenKey]domain.AccessToken
	now    func() time.Time
}

// NewTokenCache creates an empty in-memory token cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{
		tokens: make(map[domain.TokenKey]domain.AccessToken),
		now:    time.Now,
	}
}

// Get returns the cached token for key if it has not expired.
func (c *TokenCache) Get(ctx context.Context, key domain.TokenKey) (domain.AccessToken, bool, error) {
	c.mu.RLock()
	token, found := c.tokens[key]
	c.mu.RUnlock()

	if found && !token.Expired(c.now()) {
		return token, true, nil
	}
	if !found {
		return domain.AccessToken{}, false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check in case another goroutine refreshed the entry while waiting for the lock
	token, found = c.tokens[key]
	if found && !token.Expired(c.now()) {
		return token, true, nil
	}
	delete(c.tokens, key)
	return domain.AccessToken{}, false, nil
}

// Set stores token under key.
func (c *TokenCache) Set(ctx context.Context, key domain.TokenKey, token domain.AccessToken) error {
	if token.ExpiresAt.IsZero() || token.Expired(c.now()) {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[key] = token
	return nil
}

// Delete removes the token stored under key.
func (c *TokenCache) Delete(ctx context.Context, key domain.TokenKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tokens, key)
	return nil
}
