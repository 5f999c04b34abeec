package handlers

import (
	"net/http"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/TwigBush/shopgraph/internal/httpx"
)

// JWKS publishes the credential verification keys. With HMAC signing the
// set is empty.
func JWKS(keys jwk.Set) http.HandlerFunc {
	if keys == nil {
		keys = jwk.NewSet()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=300")
		httpx.WriteJSON(w, http.StatusOK, keys)
	}
}
