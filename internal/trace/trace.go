// Package trace carries a per-request correlation id from the HTTP edge
// down to service logs.
package trace

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey int

const key ctxKey = 1

// Header is read from incoming requests and echoed on responses.
const Header = "X-Trace-ID"

func NewID() string {
	return uuid.NewString()
}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

func From(ctx context.Context) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Logger returns l annotated with the trace id in ctx, or l itself when
// ctx carries none.
func Logger(ctx context.Context, l *slog.Logger) *slog.Logger {
	if id := From(ctx); id != "" {
		return l.With("trace", id)
	}
	return l
}
