package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidName  = errors.New("invalid resource name")
	ErrMissingToken = errors.New("authorization response has no wrap_access_token")

	// ErrRequestNotSent marks a TransportError raised before anything reached
	// the network: a malformed URL or a rate limiter wait that gave up.
	ErrRequestNotSent = errors.New("request not sent")
)

// AuthenticationError reports a failed token acquisition: the authorization
// endpoint was unreachable, answered with a non-2xx status, or returned a body
// without an access token.
type AuthenticationError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication against %s failed with status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("authentication against %s failed: %v", e.Endpoint, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError reports a failed resource request. StatusCode is zero when
// no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be decoded as JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsOnPremiseUnavailable reports whether err means the on-premise tier could
// not be reached: a transport failure without a response, or a gateway status
// from the relay. Requests that were never sent and calls cancelled by the
// caller do not count. It only classifies; err is never rewritten.
func IsOnPremiseUnavailable(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	switch te.StatusCode {
	case 0:
		return !errors.Is(te, ErrRequestNotSent) && !errors.Is(te, context.Canceled)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
