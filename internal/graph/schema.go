// Package graph exposes the shop over GraphQL: queries and mutations on
// HTTP, subscriptions on a websocket.
package graph

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/TwigBush/shopgraph/internal/shop"
)

//go:embed schema.graphql
var SDL string

const DefaultMaxDepth = 12

type Options struct {
	MaxDepth int
	Logger   *slog.Logger
}

type panicLogger struct {
	log *slog.Logger
}

func (p panicLogger) LogPanic(ctx context.Context, value interface{}) {
	p.log.ErrorContext(ctx, "graphql_panic", "value", value)
}

// NewSchema binds SDL to the service. It fails when a resolver does not
// match the schema.
func NewSchema(svc *shop.Service, events Subscriber, o Options) (*graphql.Schema, error) {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return graphql.ParseSchema(SDL, NewResolver(svc, events),
		graphql.UseStringDescriptions(),
		graphql.MaxDepth(o.MaxDepth),
		graphql.Logger(panicLogger{o.Logger}),
	)
}

// Handler serves POSTed GraphQL requests.
func Handler(s *graphql.Schema) *relay.Handler {
	return &relay.Handler{Schema: s}
}
