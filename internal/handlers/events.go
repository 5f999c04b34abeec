package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TwigBush/shopgraph/internal/httpx"
	"github.com/TwigBush/shopgraph/internal/types"
)

// Streamer writes a channel's events to w until the request ends.
type Streamer interface {
	ServeSSE(w http.ResponseWriter, r *http.Request, channel string)
}

// ProductLookup backs the review channel guard.
type ProductLookup interface {
	RequireProduct(ctx context.Context, id int64) error
}

// Events streams /events/{channel} as server-sent events. Review channels
// are only served for existing products, like the review subscription.
func Events(s Streamer, products ProductLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channel := chi.URLParam(r, "channel")
		if !types.KnownChannel(channel) {
			httpx.WriteError(w, http.StatusNotFound, "unknown channel "+channel)
			return
		}
		if id, ok := types.ReviewChannelProduct(channel); ok && products != nil {
			if err := products.RequireProduct(r.Context(), id); err != nil {
				httpx.WriteError(w, http.StatusNotFound, err.Error())
				return
			}
		}
		s.ServeSSE(w, r, channel)
	}
}
