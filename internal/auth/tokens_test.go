package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

func newHMAC(t *testing.T) *Tokens {
	t.Helper()
	tok, err := NewTokens(TokenConfig{Secret: "test-secret", Issuer: "shopgraph"})
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	return tok
}

func TestIssueThenAuthenticate(t *testing.T) {
	tok := newHMAC(t)
	want := types.Principal{ID: 42, Role: types.RoleAdmin}
	s, err := tok.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := tok.Authenticate("Bearer " + s)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got != want {
		t.Fatalf("principal = %+v, want %+v", got, want)
	}
	if tok.TTL() != 2*time.Hour {
		t.Fatalf("TTL = %v, want 2h", tok.TTL())
	}
}

func TestAuthenticateFailures(t *testing.T) {
	tok := newHMAC(t)
	other, _ := NewTokens(TokenConfig{Secret: "another-secret"})
	foreign, _ := other.Issue(types.Principal{ID: 1, Role: types.RoleUser})

	expiring := newHMAC(t)
	expiring.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _ := expiring.Issue(types.Principal{ID: 1, Role: types.RoleUser})

	tests := map[string]struct {
		header string
		msg    string
	}{
		"absent":           {"", "Authentication required"},
		"bare bearer":      {"Bearer ", "Authentication required"},
		"wrong scheme":     {"Basic dXNlcjpwYXNz", "Invalid token"},
		"garbage":          {"Bearer not-a-jwt", "Invalid token"},
		"wrong secret":     {"Bearer " + foreign, "Invalid token"},
		"expired":          {"Bearer " + expired, "Invalid token"},
		"lowercase scheme": {"bearer " + foreign, "Invalid token"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tok.Authenticate(tc.header)
			if err == nil {
				t.Fatalf("expected error")
			}
			if err.Error() != tc.msg {
				t.Fatalf("error = %q, want %q", err.Error(), tc.msg)
			}
			if apperr.KindOf(err) != apperr.Unauthenticated {
				t.Fatalf("kind = %v, want unauthenticated", apperr.KindOf(err))
			}
		})
	}
}

func TestAuthenticateRejectsAlgorithmSwitch(t *testing.T) {
	tok := newHMAC(t)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: 1, Role: types.RoleAdmin})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := tok.Authenticate("Bearer " + s); err == nil {
		t.Fatalf("alg=none token accepted")
	}
}

func TestAuthenticateRejectsBadRole(t *testing.T) {
	tok := newHMAC(t)
	s, _ := tok.Issue(types.Principal{ID: 5, Role: "superuser"})
	if _, err := tok.Authenticate("Bearer " + s); err == nil || err.Error() != "Invalid token" {
		t.Fatalf("err = %v, want Invalid token", err)
	}
}

func TestNewTokensRequiresKey(t *testing.T) {
	if _, err := NewTokens(TokenConfig{}); err != ErrNoKey {
		t.Fatalf("err = %v, want ErrNoKey", err)
	}
}

func TestES384TokensAndJWKS(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	b, err := json.Marshal(priv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "key.jwk")
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	key, err := LoadSigningKey(path)
	if err != nil {
		t.Fatalf("LoadSigningKey: %v", err)
	}

	tok, err := NewTokens(TokenConfig{Key: key, Secret: "ignored"})
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	s, err := tok.Issue(types.Principal{ID: 3, Role: types.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parsed, _, err := new(jwt.Parser).ParseUnverified(s, &Claims{})
	if err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if parsed.Header["alg"] != "ES384" || parsed.Header["kid"] != key.KID {
		t.Fatalf("header = %v", parsed.Header)
	}
	if _, err := tok.Authenticate("Bearer " + s); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if tok.Keys().Len() != 1 {
		t.Fatalf("JWKS size = %d, want 1", tok.Keys().Len())
	}
	out, err := json.Marshal(tok.Keys())
	if err != nil {
		t.Fatalf("marshal set: %v", err)
	}
	if strings.Contains(string(out), `"d"`) {
		t.Fatalf("JWKS leaks private material: %s", out)
	}
	if !strings.Contains(string(out), key.KID) {
		t.Fatalf("JWKS missing kid: %s", out)
	}
}

func TestLoadSigningKeyMissingFile(t *testing.T) {
	if _, err := LoadSigningKey(filepath.Join(t.TempDir(), "nope.jwk")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestHeaderContext(t *testing.T) {
	ctx := WithHeader(t.Context(), "Bearer abc")
	if got := HeaderFrom(ctx); got != "Bearer abc" {
		t.Fatalf("HeaderFrom = %q", got)
	}
	if got := HeaderFrom(t.Context()); got != "" {
		t.Fatalf("HeaderFrom(empty) = %q", got)
	}
}
