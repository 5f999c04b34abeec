package mw

import (
	"net/http"

	"github.com/TwigBush/shopgraph/internal/trace"
)

// Trace reuses the caller's trace id or mints one, and echoes it back.
func Trace() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(trace.Header)
			if id == "" {
				id = trace.NewID()
			}
			ctx := trace.With(r.Context(), id)

			w.Header().Set(trace.Header, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
