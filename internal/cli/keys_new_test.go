package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/TwigBush/shopgraph/internal/auth"
)

// capture of write calls made through the osWriteFile seam
type writeCall struct {
	path string
	data []byte
	perm uint32
}

func TestGenerateKey_WritesExpectedFilesAndFields(t *testing.T) {
	oldWrite := osWriteFile
	t.Cleanup(func() { osWriteFile = oldWrite })

	var calls []writeCall
	osWriteFile = func(path string, b []byte, perm uint32) error {
		cp := make([]byte, len(b))
		copy(cp, b)
		calls = append(calls, writeCall{path: path, data: cp, perm: perm})
		return nil
	}

	dir := t.TempDir()
	privPath, kid, err := generateKey(dir)
	if err != nil {
		t.Fatalf("generateKey error: %v", err)
	}
	if kid == "" {
		t.Fatalf("key id is empty")
	}
	// Expect two writes: private then public
	if len(calls) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(calls))
	}

	wantPriv := filepath.Join(dir, "key-"+kid+".jwk")
	wantPub := filepath.Join(dir, "key-"+kid+".pub.jwk")
	if calls[0].path != wantPriv {
		t.Fatalf("private path = %s, want %s", calls[0].path, wantPriv)
	}
	if calls[1].path != wantPub {
		t.Fatalf("public path = %s, want %s", calls[1].path, wantPub)
	}
	if privPath != wantPriv {
		t.Fatalf("returned privPath = %s, want %s", privPath, wantPriv)
	}
	if calls[0].perm != 0o600 {
		t.Fatalf("private perm = %o, want 0600", calls[0].perm)
	}
	if calls[1].perm != 0o644 {
		t.Fatalf("public perm = %o, want 0644", calls[1].perm)
	}

	var privObj map[string]any
	if err := json.Unmarshal(calls[0].data, &privObj); err != nil {
		t.Fatalf("private JSON unmarshal: %v", err)
	}
	if got := privObj["kid"]; got != kid {
		t.Fatalf("private kid = %v, want %s", got, kid)
	}
	if got := privObj["alg"]; got != "ES384" {
		t.Fatalf("private alg = %v, want ES384", got)
	}
	if got := privObj["crv"]; got != "P-384" {
		t.Fatalf("private crv = %v, want P-384", got)
	}
	if _, ok := privObj["d"]; !ok {
		t.Fatalf("private key missing 'd' field")
	}

	var pubObj map[string]any
	if err := json.Unmarshal(calls[1].data, &pubObj); err != nil {
		t.Fatalf("public JSON unmarshal: %v", err)
	}
	if got := pubObj["kid"]; got != kid {
		t.Fatalf("public kid = %v, want %s", got, kid)
	}
	if _, ok := pubObj["d"]; ok {
		t.Fatalf("public key should not contain 'd'")
	}

	// The written private key must load as a signing key with the same kid.
	priv, err := jwk.ParseKey(calls[0].data)
	if err != nil {
		t.Fatalf("parse private jwk: %v", err)
	}
	sk, err := auth.NewSigningKey(priv)
	if err != nil {
		t.Fatalf("NewSigningKey: %v", err)
	}
	if sk.KID != kid {
		t.Fatalf("signing key kid = %s, want %s", sk.KID, kid)
	}
}

func TestGenerateKey_PropagatesWriteError(t *testing.T) {
	oldWrite := osWriteFile
	t.Cleanup(func() { osWriteFile = oldWrite })

	osWriteFile = func(path string, b []byte, perm uint32) error {
		return fmt.Errorf("boom")
	}

	_, _, err := generateKey(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected write error to propagate, got %v", err)
	}
}

func TestKeysNewCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "keys", "new", "--dir", dir)
	if err != nil {
		t.Fatalf("keys new error = %v", err)
	}
	if !strings.Contains(out, "SHOPGRAPH_AUTH_SIGNING_KEY="+dir) {
		t.Fatalf("output = %q, want signing key hint", out)
	}
}
