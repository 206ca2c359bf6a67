package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/V4T54L/cloudburst/internal/adapter/redact"
	"github.com/V4T54L/cloudburst/internal/adapter/wrap"
)

// TokenIssuer issues WRAP access tokens. *wrap.Issuer implements it.
type TokenIssuer interface {
	Issue(scope, name, password string) (string, time.Duration, error)
}

// WrapHandler is the WRAP v0.9 token endpoint of the development relay.
type WrapHandler struct {
	issuer   TokenIssuer
	redactor *redact.Redactor
	logger   *slog.Logger
}

// NewWrapHandler creates a new WrapHandler.
func NewWrapHandler(issuer TokenIssuer, logger *slog.Logger) *WrapHandler {
	return &WrapHandler{
		issuer:   issuer,
		redactor: redact.NewRedactor(redact.DefaultFields),
		logger:   logger,
	}
}

// ServeHTTP handles POST /WRAPv0.9 with a form-encoded body.
func (h *WrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 16<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request: malformed form body", http.StatusBadRequest)
		return
	}

	h.logger.Debug("token request received", "form", h.redactor.Values(r.PostForm))

	name := r.PostForm.Get("wrap_name")
	password := r.PostForm.Get("wrap_password")
	if name == "" || password == "" {
		http.Error(w, "Bad Request: wrap_name and wrap_password are required", http.StatusBadRequest)
		return
	}

	token, ttl, err := h.issuer.Issue(r.PostForm.Get("wrap_scope"), name, password)
	if errors.Is(err, wrap.ErrInvalidCredentials) {
		h.logger.Warn("token request rejected", "wrap_name", name, "remote_addr", r.RemoteAddr)
		http.Error(w, "Error:Code:401:Detail:invalid issuer credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	body := url.Values{
		"wrap_access_token":            {token},
		"wrap_access_token_expires_in": {strconv.Itoa(int(ttl.Seconds()))},
	}.Encode()

	h.logger.Info("token issued", "wrap_name", name, "expires_in", ttl.String())
	w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
