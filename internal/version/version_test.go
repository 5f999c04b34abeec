package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "1.2.3"

	info := Get()
	if info.Version != "1.2.3" {
		t.Fatalf("Version = %q, want 1.2.3", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Fatalf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if got := String(); got != "shopgraph 1.2.3" {
		t.Fatalf("String = %q", got)
	}
	if !strings.HasPrefix(Verbose(), "shopgraph 1.2.3 (commit: ") {
		t.Fatalf("Verbose = %q", Verbose())
	}
}
