package mw

import (
	"net/http"

	"github.com/TwigBush/shopgraph/internal/auth"
)

// Authorization copies the raw Authorization header into the request
// context. Verification happens per mutation, so public operations keep
// working with a missing or stale header.
func Authorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if h == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithHeader(r.Context(), h)))
	})
}
