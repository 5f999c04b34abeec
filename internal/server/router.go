package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/websocket"
	"github.com/graph-gophers/graphql-go"
	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/TwigBush/shopgraph/internal/graph"
	"github.com/TwigBush/shopgraph/internal/handlers"
	mw2 "github.com/TwigBush/shopgraph/internal/mw"
)

type Options struct {
	AllowedOrigins []string
	// RateLimit requests per RateWindow per client IP; zero disables it.
	RateLimit  int
	RateWindow time.Duration
	DevNoStore bool
}

type Deps struct {
	Schema   *graphql.Schema
	Events   handlers.Streamer
	Products handlers.ProductLookup
	Keys     jwk.Set
	Store    handlers.Pinger // nil for the memory store
	Logger   *slog.Logger
}

func BuildRouter(d Deps, opts Options, mw ...func(http.Handler) http.Handler) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	if opts.DevNoStore {
		r.Use(mw2.NoStore)
	}

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))
	for _, m := range mw {
		r.Use(m)
	}

	// tracing + logger
	r.Use(mw2.Trace())
	r.Use(mw2.Logger(mw2.LogOpts{
		Logger:         log,
		SkipPaths:      mw2.DefaultSkipPaths,
		StreamPrefixes: []string{"/events/", "/graphql/ws"},
	}))

	r.Get("/healthz", handlers.Health(d.Store))
	r.Get("/version", handlers.Version)
	r.Get("/.well-known/jwks.json", handlers.JWKS(d.Keys))
	r.Get("/", Discovery)

	ws := graph.NewWSHandler(d.Schema, log)
	api := graph.Handler(d.Schema)
	r.Group(func(g chi.Router) {
		if opts.RateLimit > 0 {
			g.Use(httprate.LimitByIP(opts.RateLimit, opts.RateWindow))
		}
		g.Use(mw2.Authorization)
		g.Use(mw2.NoStore)

		g.Post("/graphql", api.ServeHTTP)
		g.Get("/graphql/ws", ws.ServeHTTP)
		// Clients that open the websocket on the query endpoint.
		g.Get("/graphql", func(w http.ResponseWriter, r *http.Request) {
			if !websocket.IsWebSocketUpgrade(r) {
				w.Header().Set("Allow", "POST")
				http.Error(w, "use POST for queries and mutations", http.StatusMethodNotAllowed)
				return
			}
			ws.ServeHTTP(w, r)
		})
		if d.Events != nil {
			g.Get("/events/{channel}", handlers.Events(d.Events, d.Products))
		}
	})

	return r
}
