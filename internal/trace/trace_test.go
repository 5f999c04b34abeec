package trace

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	if got := From(context.Background()); got != "" {
		t.Fatalf("From(empty) = %q, want empty", got)
	}
	id := NewID()
	if got := From(With(context.Background(), id)); got != id {
		t.Fatalf("From = %q, want %q", got, id)
	}
	if NewID() == id {
		t.Fatalf("NewID returned a duplicate")
	}
}

func TestLoggerAddsTrace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	Logger(context.Background(), base).Info("plain")
	if strings.Contains(buf.String(), "trace=") {
		t.Fatalf("untraced line has a trace attr: %s", buf.String())
	}

	buf.Reset()
	Logger(With(context.Background(), "abc"), base).Info("traced")
	if !strings.Contains(buf.String(), "trace=abc") {
		t.Fatalf("line = %q, want trace=abc", buf.String())
	}
}
