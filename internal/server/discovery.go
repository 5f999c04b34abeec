package server

import (
	"net/http"

	"github.com/TwigBush/shopgraph/internal/httpx"
	"github.com/TwigBush/shopgraph/internal/version"
)

// discoveryResp lists the endpoints a client needs, as absolute URLs.
type discoveryResp struct {
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	GraphQL       string   `json:"graphql_endpoint"`
	Subscriptions string   `json:"subscriptions_endpoint"`
	SubProtocols  []string `json:"subscription_protocols"`
	Events        string   `json:"events_endpoint"`
	JWKS          string   `json:"jwks_uri"`
	Health        string   `json:"health_endpoint"`
}

func Discovery(w http.ResponseWriter, r *http.Request) {
	base := httpx.BaseURL(r)
	httpx.WriteJSON(w, http.StatusOK, discoveryResp{
		Name:          "shopgraph",
		Version:       version.Version,
		GraphQL:       base + "/graphql",
		Subscriptions: httpx.WebSocketURL(r, "/graphql/ws"),
		SubProtocols:  []string{"graphql-transport-ws", "graphql-ws"},
		Events:        base + "/events/{channel}",
		JWKS:          base + "/.well-known/jwks.json",
		Health:        base + "/healthz",
	})
}
