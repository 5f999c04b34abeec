package auth

import (
	"context"
	"strings"
)

type ctxKey int

const headerKey ctxKey = 1

// WithHeader stores the raw Authorization header for the request.
func WithHeader(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, headerKey, header)
}

func HeaderFrom(ctx context.Context) string {
	if v, ok := ctx.Value(headerKey).(string); ok {
		return v
	}
	return ""
}

// bearer extracts the token from "Bearer <token>". ok is false when the
// header is absent or carries no token at all.
func bearer(header string) (token string, ok, malformed bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false, false
	}
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		if strings.EqualFold(header, "bearer") {
			return "", false, false
		}
		return "", false, true
	}
	token = strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false, false
	}
	return token, true, false
}
