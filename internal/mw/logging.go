package mw

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/TwigBush/shopgraph/internal/httpx"
	"github.com/TwigBush/shopgraph/internal/trace"
)

type LogOpts struct {
	Logger *slog.Logger
	// SkipPaths are matched exactly and never logged.
	SkipPaths []string
	// StreamPrefixes mark long-lived responses (event streams, websockets).
	// They get a "stream_open" line up front in addition to the summary.
	StreamPrefixes []string
	// RedactHeaders are masked in req_detail in addition to Authorization.
	RedactHeaders []string
}

var DefaultSkipPaths = []string{"/healthz", "/version"}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions
}

func (o LogOpts) skip(p string) bool {
	return slices.Contains(o.SkipPaths, p)
}

func (o LogOpts) stream(p string) bool {
	for _, pre := range o.StreamPrefixes {
		if strings.HasPrefix(p, pre) {
			return true
		}
	}
	return false
}

func (o LogOpts) redacted(name string) bool {
	if strings.EqualFold(name, "Authorization") || strings.HasPrefix(strings.ToLower(name), "x-api-key") {
		return true
	}
	for _, h := range o.RedactHeaders {
		if strings.EqualFold(name, h) {
			return true
		}
	}
	return false
}

// Logger writes one "req" line per request and, for failed requests, a
// "req_detail" line carrying the request headers with credentials masked.
func Logger(opts LogOpts) func(http.Handler) http.Handler {
	if opts.SkipPaths == nil {
		opts.SkipPaths = DefaultSkipPaths
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPreflight(r) || opts.skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			tid := trace.From(r.Context())
			if opts.stream(r.URL.Path) {
				log.Info("stream_open", "trace", tid, "path", r.URL.Path)
			}

			start := time.Now()
			rec := httpx.NewRecorder(w)
			next.ServeHTTP(rec, r)
			dur := time.Since(start)

			log.Info("req",
				"trace", tid,
				"m", r.Method,
				"path", r.URL.Path,
				"status", rec.Status,
				"ms", dur.Milliseconds(),
				"bytes", rec.Bytes,
			)

			if rec.Status >= 400 {
				h := map[string]string{}
				for k, vv := range r.Header {
					if len(vv) == 0 {
						continue
					}
					vl := vv[0]
					if opts.redacted(k) {
						vl = "***redacted***"
					}
					h[k] = vl
				}
				log.Error("req_detail",
					"trace", tid,
					"m", r.Method, "path", r.URL.Path,
					"status", rec.Status, "ms", dur.Milliseconds(),
					"headers", h,
				)
			}
		})
	}
}
