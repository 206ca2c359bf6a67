package domain

import (
	"context"
	"time"
)

// Credentials identify the issuer that requests relay access tokens.
type Credentials struct {
	ServiceNamespaceHost string
	IssuerName           string
	IssuerSecret         string
}

// AccessToken is an opaque WRAP token. ExpiresAt is zero when the issuer
// did not state a lifetime.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now. Tokens without
// a lifetime never report expired.
func (t AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// TokenKey scopes a cached token to a namespace and issuer.
type TokenKey struct {
	Namespace  string
	IssuerName string
}

// TokenCache stores access tokens between requests.
type TokenCache interface {
	Get(ctx context.Context, key TokenKey) (AccessToken, bool, error)
	Set(ctx context.Context, key TokenKey, token AccessToken) error
	Delete(ctx context.Context, key TokenKey) error
}
