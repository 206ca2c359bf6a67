package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/V4T54L/cloudburst/internal/domain"
)

func TestTokenKey(t *testing.T) {
	got := tokenKey(domain.TokenKey{Namespace: "mtug-1", IssuerName: "owner"})
	want := "cloudburst:wrap_token:mtug-1:owner"
	if got != want {
		t.Errorf("tokenKey() = %q, want %q", got, want)
	}
}

func TestTokenCache_SkipsTokensWithoutLifetime(t *testing.T) {
	// The client points at a closed port: any command that reaches Redis fails.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	cache := NewTokenCache(client, slog.New(slog.NewTextHandler(io.Discard, nil)))

	key := domain.TokenKey{Namespace: "ns", IssuerName: "owner"}
	if err := cache.Set(context.Background(), key, domain.AccessToken{Value: "abc"}); err != nil {
		t.Fatalf("expected token without lifetime to be skipped, got %v", err)
	}
	expired := domain.AccessToken{Value: "abc", ExpiresAt: time.Now().Add(-time.Minute)}
	if err := cache.Set(context.Background(), key, expired); err != nil {
		t.Fatalf("expected expired token to be skipped, got %v", err)
	}
}

func TestTokenCache_UnavailableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	cache := NewTokenCache(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	key := domain.TokenKey{Namespace: "ns", IssuerName: "owner"}

	if _, ok, err := cache.Get(context.Background(), key); err == nil || ok {
		t.Errorf("expected an error from unavailable redis, got ok=%v err=%v", ok, err)
	}
	live := domain.AccessToken{Value: "abc", ExpiresAt: time.Now().Add(time.Minute)}
	if err := cache.Set(context.Background(), key, live); err == nil {
		t.Error("expected an error storing to unavailable redis")
	}
	if err := cache.Delete(context.Background(), key); err == nil {
		t.Error("expected an error deleting from unavailable redis")
	}
}

func newMiniredisCache(t *testing.T) (*TokenCache, *miniredis.Miniredis, time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTokenCache(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cache.now = func() time.Time { return now }
	return cache, mr, now
}

func TestTokenCache_RoundTrip(t *testing.T) {
	cache, mr, now := newMiniredisCache(t)
	ctx := context.Background()
	key := domain.TokenKey{Namespace: "mtug-1", IssuerName: "owner"}

	if _, ok, err := cache.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected a miss on an empty cache, got ok=%v err=%v", ok, err)
	}

	token := domain.AccessToken{Value: "net.windows.servicebus.action=Listen&Audience=x", ExpiresAt: now.Add(time.Minute)}
	if err := cache.Set(ctx, key, token); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := mr.TTL(tokenKey(key)); ttl != time.Minute {
		t.Errorf("redis TTL = %v, want %v", ttl, time.Minute)
	}

	got, ok, err := cache.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
	}
	if got.Value != token.Value {
		t.Errorf("Value = %q, want %q", got.Value, token.Value)
	}
	if !got.ExpiresAt.Equal(token.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, token.ExpiresAt)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, err := cache.Get(ctx, key); err != nil || ok {
		t.Errorf("expected a miss after Delete, got ok=%v err=%v", ok, err)
	}
}

func TestTokenCache_ExpiredKeyIsAMiss(t *testing.T) {
	cache, mr, now := newMiniredisCache(t)
	ctx := context.Background()
	key := domain.TokenKey{Namespace: "mtug-1", IssuerName: "owner"}

	if err := cache.Set(ctx, key, domain.AccessToken{Value: "abc", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, err := cache.Get(ctx, key); err != nil || ok {
		t.Errorf("expected a miss once the TTL has passed, got ok=%v err=%v", ok, err)
	}
}

func TestTokenCache_KeyWithoutTTLIsAMiss(t *testing.T) {
	cache, mr, _ := newMiniredisCache(t)
	key := domain.TokenKey{Namespace: "mtug-1", IssuerName: "owner"}
	if err := mr.Set(tokenKey(key), "abc"); err != nil {
		t.Fatalf("seeding redis: %v", err)
	}

	if _, ok, err := cache.Get(context.Background(), key); err != nil || ok {
		t.Errorf("expected a key without expiry to be a miss, got ok=%v err=%v", ok, err)
	}
}

func TestTokenCache_KeysAreIsolated(t *testing.T) {
	cache, _, now := newMiniredisCache(t)
	ctx := context.Background()
	a := domain.TokenKey{Namespace: "mtug-1", IssuerName: "owner"}
	b := domain.TokenKey{Namespace: "mtug-2", IssuerName: "owner"}

	if err := cache.Set(ctx, a, domain.AccessToken{Value: "tok-a", ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := cache.Get(ctx, b); err != nil || ok {
		t.Errorf("expected a miss for another namespace, got ok=%v err=%v", ok, err)
	}
}
