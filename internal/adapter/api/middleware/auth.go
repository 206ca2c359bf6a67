package middleware

import (
	"log/slog"
	"net/http"

	"github.com/V4T54L/cloudburst/internal/adapter/wrap"
)

// TokenVerifier validates WRAP access tokens. *wrap.Issuer implements it.
type TokenVerifier interface {
	Verify(token string) (*wrap.Claims, error)
}

// Auth is a middleware factory that returns a new authentication middleware.
// It requires an `Authorization: WRAP access_token="..."` header carrying a
// token the verifier accepts. The header is removed before the request is
// passed on.
func Auth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("access token missing from request", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
				http.Error(w, "Unauthorized: WRAP access token required", http.StatusUnauthorized)
				return
			}

			token, ok := wrap.ParseAuthorizationHeader(header)
			if !ok {
				logger.Warn("malformed authorization header", "remote_addr", r.RemoteAddr)
				http.Error(w, "Unauthorized: malformed WRAP authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("invalid access token provided", "remote_addr", r.RemoteAddr, "error", err)
				http.Error(w, "Unauthorized: Invalid access token", http.StatusUnauthorized)
				return
			}

			logger.Debug("access token accepted", "issuer", claims.Subject, "token_id", claims.ID)
			r.Header.Del("Authorization")
			next.ServeHTTP(w, r)
		})
	}
}
