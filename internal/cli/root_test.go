package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// resetFlags puts globals and persistent flags back to their defaults so tests do not
// bleed state into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	_ = rootCmd.PersistentFlags().Set("config", "shopgraph.yaml")
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := Execute()
	return buf.String(), err
}

func TestRootDefaultsAndFlags(t *testing.T) {
	resetFlags(t)

	if got, want := rootCmd.Use, "shopgraph"; got != want {
		t.Fatalf("Use = %q, want %q", got, want)
	}
	if !rootCmd.SilenceUsage {
		t.Fatalf("SilenceUsage = false, want true")
	}
	if !rootCmd.SilenceErrors {
		t.Fatalf("SilenceErrors = false, want true")
	}
	if cfgPath != "shopgraph.yaml" {
		t.Fatalf("config default = %q, want %q", cfgPath, "shopgraph.yaml")
	}

	want := []string{"serve", "migrate", "seed", "token", "keys", "schema", "version"}
	for _, name := range want {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("subcommand %q not found (err %v)", name, err)
		}
	}
}

func TestHelpCommandRuns(t *testing.T) {
	out, err := run(t, "help")
	if err != nil {
		t.Fatalf("help Execute() error = %v", err)
	}
	if !strings.Contains(out, "shopgraph") || !strings.Contains(out, "Usage:") {
		t.Fatalf("help output did not contain expected text; got:\n%s", out)
	}
}

func TestExecuteNoArgsPrintsHint(t *testing.T) {
	out, err := run(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Use -h for help") {
		t.Fatalf("expected hint to be printed, got:\n%s", out)
	}
}

func TestSchemaPrintsSDL(t *testing.T) {
	out, err := run(t, "schema")
	if err != nil {
		t.Fatalf("schema error = %v", err)
	}
	if !strings.Contains(out, "type Mutation") {
		t.Fatalf("schema output missing Mutation type:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "shopgraph ") {
		t.Fatalf("version = %q, want shopgraph prefix", out)
	}
}

func TestMigrateNeedsPostgres(t *testing.T) {
	t.Setenv("SHOPGRAPH_STORE", "memory")
	_, err := run(t, "--config", "", "migrate")
	if err != errNeedsPostgres {
		t.Fatalf("migrate error = %v, want %v", err, errNeedsPostgres)
	}
}
