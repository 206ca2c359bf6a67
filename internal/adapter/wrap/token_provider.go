package wrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/V4T54L/cloudburst/internal/adapter/redact"
	"github.com/V4T54L/cloudburst/internal/domain"
)

const (
	DefaultEndpointTemplate = "https://{namespace}-sb.accesscontrol.windows.net/WRAPv0.9"
	DefaultScopeTemplate    = "http://{namespace}.servicebus.windows.net"

	namespacePlaceholder = "{namespace}"
	accessTokenKey       = "wrap_access_token"
	expiresInKey         = "wrap_access_token_expires_in"
	maxResponseBytes     = 64 << 10
)

// TokenProvider requests WRAP v0.9 access tokens from an authorization endpoint.
// It holds no token state; every call performs one POST.
type TokenProvider struct {
	client           *http.Client
	endpointTemplate string
	scopeTemplate    string
	logger           *slog.Logger
	redactor         *redact.Redactor
	now              func() time.Time
}

// NewTokenProvider creates a TokenProvider. Templates may contain the
// {namespace} placeholder; empty templates select the access control defaults.
func NewTokenProvider(client *http.Client, endpointTemplate, scopeTemplate string, logger *slog.Logger) *TokenProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if endpointTemplate == "" {
		endpointTemplate = DefaultEndpointTemplate
	}
	if scopeTemplate == "" {
		scopeTemplate = DefaultScopeTemplate
	}
	return &TokenProvider{
		client:           client,
		endpointTemplate: endpointTemplate,
		scopeTemplate:    scopeTemplate,
		logger:           logger.With("component", "wrap_token_provider"),
		redactor:         redact.NewRedactor(redact.DefaultFields),
		now:              time.Now,
	}
}

// Endpoint returns the authorization endpoint for a service namespace.
func (p *TokenProvider) Endpoint(serviceNamespace string) string {
	return strings.ReplaceAll(p.endpointTemplate, namespacePlaceholder, serviceNamespace)
}

// Scope returns the relying party address a token is requested for.
func (p *TokenProvider) Scope(serviceNamespace string) string {
	return strings.ReplaceAll(p.scopeTemplate, namespacePlaceholder, serviceNamespace)
}

// AcquireToken posts the issuer credentials and returns the decoded access token.
// Every failure is reported as *domain.AuthenticationError.
func (p *TokenProvider) AcquireToken(ctx context.Context, serviceNamespace, issuerName, issuerPassword string) (domain.AccessToken, error) {
	endpoint := p.Endpoint(serviceNamespace)
	fail := func(status int, err error) (domain.AccessToken, error) {
		return domain.AccessToken{}, &domain.AuthenticationError{Endpoint: endpoint, StatusCode: status, Err: err}
	}

	form := url.Values{
		"wrap_scope":    {p.Scope(serviceNamespace)},
		"wrap_name":     {issuerName},
		"wrap_password": {issuerPassword},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("read token response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warn("token request rejected", "endpoint", endpoint, "status", resp.StatusCode, "body", p.redactor.Pairs(string(body)))
		return fail(resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}

	token, err := ParseTokenResponse(string(body), p.now())
	if err != nil {
		p.logger.Warn("unexpected token response", "endpoint", endpoint, "error", err, "body", p.redactor.Pairs(string(body)))
		return fail(resp.StatusCode, err)
	}
	return token, nil
}

// ParseTokenResponse extracts the access token from an '&'-joined key=value
// body. The first wrap_access_token pair wins. When the body also carries
// wrap_access_token_expires_in, the expiry is computed relative to now.
func ParseTokenResponse(body string, now time.Time) (domain.AccessToken, error) {
	var (
		token domain.AccessToken
		found bool
	)
	for _, pair := range strings.Split(body, "&") {
		key, value, _ := strings.Cut(pair, "=")
		switch key {
		case accessTokenKey:
			if found {
				continue
			}
			decoded, err := url.QueryUnescape(value)
			if err != nil {
				return domain.AccessToken{}, fmt.Errorf("decode %s: %w", accessTokenKey, err)
			}
			token.Value = decoded
			found = decoded != ""
		case expiresInKey:
			seconds, err := strconv.Atoi(strings.TrimSpace(value))
			if err == nil && seconds > 0 {
				token.ExpiresAt = now.Add(time.Duration(seconds) * time.Second)
			}
		}
	}
	if !found {
		return domain.AccessToken{}, domain.ErrMissingToken
	}
	return token, nil
}
