package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/TwigBush/shopgraph/internal/httpx"
	"github.com/TwigBush/shopgraph/internal/version"
)

// Pinger is implemented by stores backed by a remote database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports healthy, or 503 when the store cannot be reached. A nil
// pinger is always healthy.
func Health(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				slog.Warn("health_ping", "err", err)
				httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status":  "unavailable",
					"version": version.Version,
				})
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"version": version.Version,
		})
	}
}
