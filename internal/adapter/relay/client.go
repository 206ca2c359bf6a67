package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/V4T54L/cloudburst/internal/adapter/metrics"
	"github.com/V4T54L/cloudburst/internal/adapter/wrap"
	"github.com/V4T54L/cloudburst/internal/domain"
)

// ServiceBusSuffix is stripped from the base address to obtain the service namespace.
const ServiceBusSuffix = ".servicebus.windows.net"

const (
	kindJSON   = "json"
	kindStream = "stream"
)

// TokenAcquirer obtains WRAP access tokens. *wrap.TokenProvider implements it.
type TokenAcquirer interface {
	AcquireToken(ctx context.Context, serviceNamespace, issuerName, issuerPassword string) (domain.AccessToken, error)
}

// Options configures a Client.
type Options struct {
	HTTPClient  *http.Client
	Scheme      string
	Credentials domain.Credentials
	RequireAuth bool
	Timeout     time.Duration // used only when HTTPClient is nil
	RateLimit   float64       // requests per second, 0 disables limiting
	RateBurst   int
	CacheSkew   time.Duration // subtracted from token expiry before caching
}

// Client performs authorized GET requests against resources exposed through
// the relay. It implements domain.ResourceClient.
type Client struct {
	http        *http.Client
	scheme      string
	creds       domain.Credentials
	namespace   string
	requireAuth bool
	tokens      TokenAcquirer
	cache       domain.TokenCache
	cacheSkew   time.Duration
	limiter     *rate.Limiter
	metrics     *metrics.RelayMetrics
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewClient creates a relay client. cache may be nil, in which case a token is
// acquired for every request. m may be nil to disable metrics.
func NewClient(opts Options, tokens TokenAcquirer, cache domain.TokenCache, m *metrics.RelayMetrics, logger *slog.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	scheme := opts.Scheme
	if scheme == "" {
		scheme = "https"
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		http:        httpClient,
		scheme:      scheme,
		creds:       opts.Credentials,
		namespace:   strings.TrimSuffix(opts.Credentials.ServiceNamespaceHost, ServiceBusSuffix),
		requireAuth: opts.RequireAuth,
		tokens:      tokens,
		cache:       cache,
		cacheSkew:   opts.CacheSkew,
		limiter:     limiter,
		metrics:     m,
		logger:      logger.With("component", "relay_client"),
		tracer:      otel.Tracer("github.com/V4T54L/cloudburst/internal/adapter/relay"),
	}
}

// BaseURL returns scheme://baseAddress for building resource URLs.
func (c *Client) BaseURL() string {
	return c.scheme + "://" + c.creds.ServiceNamespaceHost
}

// Namespace returns the service namespace tokens are requested for.
func (c *Client) Namespace() string {
	return c.namespace
}

// FetchJSON issues an authorized GET and decodes the JSON body into out.
func (c *Client) FetchJSON(ctx context.Context, url string, out any) error {
	_, _, err := c.get(ctx, kindJSON, url, func(body []byte) error {
		if err := json.Unmarshal(body, out); err != nil {
			return &domain.DecodeError{URL: url, Err: err}
		}
		return nil
	})
	return err
}

// FetchStream issues an authorized GET and returns the raw body. The body is
// read completely before returning, so a failure never yields partial data.
func (c *Client) FetchStream(ctx context.Context, url string) (*domain.RemoteResource, error) {
	body, contentType, err := c.get(ctx, kindStream, url, nil)
	if err != nil {
		return nil, err
	}
	return &domain.RemoteResource{
		ContentType: contentType,
		Body:        io.NopCloser(bytes.NewReader(body)),
	}, nil
}

// FetchTyped fetches url through client and decodes the response into a T.
func FetchTyped[T any](ctx context.Context, client domain.ResourceClient, url string) (T, error) {
	var out T
	if err := client.FetchJSON(ctx, url, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, kind, url string, decode func([]byte) error) (body []byte, contentType string, err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "relay.fetch_"+kind, trace.WithAttributes(attribute.String("http.url", url)))
	defer func() {
		c.observe(kind, start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", &domain.TransportError{URL: url, Err: fmt.Errorf("%w: rate limit: %v", domain.ErrRequestNotSent, err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &domain.TransportError{URL: url, Err: fmt.Errorf("%w: %v", domain.ErrRequestNotSent, err)}
	}

	if c.requireAuth {
		token, err := c.token(ctx)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("Authorization", wrap.AuthorizationHeader(token.Value))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &domain.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateToken(ctx)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, "", &domain.TransportError{URL: url, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &domain.TransportError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	if decode != nil {
		if err := decode(body); err != nil {
			return nil, "", err
		}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// token returns a cached token when one is live, otherwise acquires a new one.
// Cache failures are logged and fall through to acquisition.
func (c *Client) token(ctx context.Context) (domain.AccessToken, error) {
	key := c.tokenKey()
	if c.cache != nil {
		token, ok, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.Warn("token cache read failed", "error", err)
		case ok:
			if c.metrics != nil {
				c.metrics.TokenCacheHits.Inc()
			}
			return token, nil
		}
		if c.metrics != nil {
			c.metrics.TokenCacheMisses.Inc()
		}
	}

	token, err := c.tokens.AcquireToken(ctx, c.namespace, c.creds.IssuerName, c.creds.IssuerSecret)
	if err != nil {
		if c.metrics != nil {
			c.metrics.TokenRequestsTotal.WithLabelValues("error").Inc()
		}
		return domain.AccessToken{}, err
	}
	if c.metrics != nil {
		c.metrics.TokenRequestsTotal.WithLabelValues("ok").Inc()
	}

	if c.cache != nil && !token.ExpiresAt.IsZero() {
		cached := token
		cached.ExpiresAt = token.ExpiresAt.Add(-c.cacheSkew)
		if err := c.cache.Set(ctx, key, cached); err != nil {
			c.logger.Warn("token cache write failed", "error", err)
		}
	}
	return token, nil
}

func (c *Client) invalidateToken(ctx context.Context) {
	if c.cache == nil || !c.requireAuth {
		return
	}
	if err := c.cache.Delete(ctx, c.tokenKey()); err != nil {
		c.logger.Warn("token cache invalidation failed", "error", err)
		return
	}
	c.logger.Info("relay rejected token, cached token dropped", "namespace", c.namespace)
}

func (c *Client) tokenKey() domain.TokenKey {
	return domain.TokenKey{Namespace: c.namespace, IssuerName: c.creds.IssuerName}
}

func (c *Client) observe(kind string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	c.metrics.ResourceRequestsTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

func statusLabel(err error) string {
	var (
		authErr      *domain.AuthenticationError
		transportErr *domain.TransportError
		decodeErr    *domain.DecodeError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	default:
		return "error"
	}
}
