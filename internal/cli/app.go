package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/graph-gophers/graphql-go"

	"github.com/TwigBush/shopgraph/internal/auth"
	"github.com/TwigBush/shopgraph/internal/config"
	"github.com/TwigBush/shopgraph/internal/graph"
	"github.com/TwigBush/shopgraph/internal/handlers"
	"github.com/TwigBush/shopgraph/internal/pubsub"
	"github.com/TwigBush/shopgraph/internal/seed"
	"github.com/TwigBush/shopgraph/internal/server"
	"github.com/TwigBush/shopgraph/internal/shop"
	"github.com/TwigBush/shopgraph/internal/store/memstore"
	"github.com/TwigBush/shopgraph/internal/store/pgstore"
	"github.com/TwigBush/shopgraph/internal/types"
)

// app is the wired server: one store, one broker and one service shared by
// every transport.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	store     types.Store
	pinger    handlers.Pinger
	tokens    *auth.Tokens
	passwords auth.Passwords
	broker    *pubsub.Broker
	svc       *shop.Service
	schema    *graphql.Schema
}

// openStore connects the configured backend. Postgres is migrated on open.
func openStore(ctx context.Context, cfg *config.Config) (types.Store, handlers.Pinger, error) {
	switch cfg.Store {
	case config.StorePostgres:
		s, err := pgstore.Connect(ctx, cfg.DatabaseURL, pgstore.Options{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		return s, s, nil
	default:
		return memstore.New(), nil, nil
	}
}

func newTokens(cfg *config.Config) (*auth.Tokens, error) {
	tc := auth.TokenConfig{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
		Issuer: cfg.Auth.Issuer,
	}
	if cfg.Auth.SigningKey != "" {
		key, err := auth.LoadSigningKey(cfg.Auth.SigningKey)
		if err != nil {
			return nil, err
		}
		tc.Key = key
	}
	return auth.NewTokens(tc)
}

func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	store, pinger, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		pinger:    pinger,
		passwords: auth.Passwords{Cost: cfg.Auth.BcryptCost},
		broker:    pubsub.NewBroker(),
	}
	a.tokens, err = newTokens(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	if cfg.Store == config.StoreMemory && cfg.Seed {
		d, err := seed.Demo()
		if err != nil {
			store.Close()
			return nil, err
		}
		n, err := seed.Load(ctx, store, a.passwords, d)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		log.Info("seeded", "counts", n.String())
	}

	a.svc = shop.New(shop.Deps{
		Store:     store,
		Guard:     a.tokens,
		Tokens:    a.tokens,
		Passwords: a.passwords,
		Events:    a.broker,
		Logger:    log,
		PageSize:  cfg.Pagination.DefaultLimit,
	})
	a.schema, err = graph.NewSchema(a.svc, a.broker, graph.Options{MaxDepth: cfg.GraphQL.MaxDepth, Logger: log})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("bind schema: %w", err)
	}
	return a, nil
}

func (a *app) handler() http.Handler {
	return server.BuildRouter(server.Deps{
		Schema:   a.schema,
		Events:   a.broker,
		Products: a.svc,
		Keys:     a.tokens.Keys(),
		Store:    a.pinger,
		Logger:   a.log,
	}, server.Options{
		AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		RateLimit:      a.cfg.RateLimit.Requests,
		RateWindow:     a.cfg.RateLimit.Window,
		DevNoStore:     a.cfg.Dev,
	})
}

func (a *app) Close() { a.store.Close() }
