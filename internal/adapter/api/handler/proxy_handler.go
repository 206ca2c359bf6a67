package handler

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// NewProxyHandler forwards requests to target, keeping the incoming path and query.
func NewProxyHandler(target *url.URL, logger *slog.Logger) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("upstream request failed", "upstream", target.String(), "path", r.URL.Path, "error", err)
			http.Error(w, "Bad Gateway", http.StatusBadGateway)
		},
	}
}
