package httpx

import (
	"net"
	"net/http"
	"strings"
)

// BaseURL reconstructs the externally visible origin of r, honoring
// X-Forwarded-Proto from a terminating proxy.
func BaseURL(r *http.Request) string {
	scheme := "http"
	if r.Header.Get("X-Forwarded-Proto") == "https" || r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if host == "" {
		h, p, _ := net.SplitHostPort(r.URL.Host)
		if h == "" {
			h = "localhost"
		}
		if p == "" {
			p = "80"
		}
		host = net.JoinHostPort(h, p)
	}
	return scheme + "://" + host
}

// WebSocketURL is BaseURL with the ws or wss scheme, joined with path.
func WebSocketURL(r *http.Request, path string) string {
	base := BaseURL(r)
	if rest, ok := strings.CutPrefix(base, "https://"); ok {
		return "wss://" + rest + path
	}
	return "ws://" + strings.TrimPrefix(base, "http://") + path
}
