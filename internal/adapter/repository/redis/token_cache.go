package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/V4T54L/cloudburst/internal/domain"
)

const tokenKeyPrefix = "cloudburst:wrap_token"

// TokenCache implements domain.TokenCache on Redis so that every cloud
// instance shares one token per namespace and issuer. Redis expiry mirrors the
// token's ExpiresAt.
type TokenCache struct {
	client *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewTokenCache creates a new Redis-backed TokenCache.
func NewTokenCache(client *redis.Client, logger *slog.Logger) *TokenCache {
	return &TokenCache{
		client: client,
		logger: logger.With("component", "redis_token_cache"),
		now:    time.Now,
	}
}

// Get returns the cached token for key, reconstructing ExpiresAt from the key's TTL.
func (c *TokenCache) Get(ctx context.Context, key domain.TokenKey) (domain.AccessToken, bool, error) {
	redisKey := tokenKey(key)

	pipe := c.client.Pipeline()
	getCmd := pipe.Get(ctx, redisKey)
	ttlCmd := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return domain.AccessToken{}, false, fmt.Errorf("failed to read token from redis: %w", err)
	}

	value, err := getCmd.Result()
	if errors.Is(err, redis.Nil) {
		return domain.AccessToken{}, false, nil
	}
	if err != nil {
		return domain.AccessToken{}, false, fmt.Errorf("failed to read token from redis: %w", err)
	}

	ttl := ttlCmd.Val()
	if ttl <= 0 {
		// Key without expiry or already gone; treat as a miss so a fresh token is fetched.
		return domain.AccessToken{}, false, nil
	}
	return domain.AccessToken{Value: value, ExpiresAt: c.now().Add(ttl)}, true, nil
}

// Set stores token under key until its expiry. Tokens without a lifetime are skipped.
func (c *TokenCache) Set(ctx context.Context, key domain.TokenKey, token domain.AccessToken) error {
	if token.ExpiresAt.IsZero() {
		return nil
	}
	ttl := token.ExpiresAt.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, tokenKey(key), token.Value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in redis: %w", err)
	}
	c.logger.Debug("cached access token", "namespace", key.Namespace, "issuer", key.IssuerName, "ttl", ttl)
	return nil
}

// Delete removes the token stored under key.
func (c *TokenCache) Delete(ctx context.Context, key domain.TokenKey) error {
	if err := c.client.Del(ctx, tokenKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete token from redis: %w", err)
	}
	return nil
}

func tokenKey(key domain.TokenKey) string {
	return fmt.Sprintf("%s:%s:%s", tokenKeyPrefix, key.Namespace, key.IssuerName)
}
