package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TwigBush/shopgraph/internal/auth"
	"github.com/TwigBush/shopgraph/internal/config"
	"github.com/TwigBush/shopgraph/internal/types"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Auth.BcryptCost = 4
	return cfg
}

func TestBuildAppSeedsMemoryStore(t *testing.T) {
	cfg := testConfig(t)
	a, err := buildApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer a.Close()

	body, err := json.Marshal(map[string]string{
		"query": `mutation { login(data: {email: "sophia.carter@test.com", password: "sophiacarter123"}) { token user { role } } }`,
	})
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.handler().ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			Login struct {
				Token string
				User  struct{ Role string }
			}
		}
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	assert.NotEmpty(t, res.Data.Login.Token)
	assert.Equal(t, "admin", res.Data.Login.User.Role)
}

func TestBuildAppWithoutSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Seed = false
	a, err := buildApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer a.Close()

	n, err := a.store.Users().Count(context.Background(), types.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBuildAppWithSigningKey(t *testing.T) {
	path, kid, err := generateKey(t.TempDir())
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Seed = false
	cfg.Auth.SigningKey = path
	a, err := buildApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), kid)
	assert.NotContains(t, w.Body.String(), `"d"`)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("SHOPGRAPH_AUTH_JWT_SECRET", "cli-secret")
	out, err := run(t, "--config", "", "token", "--id", "7", "--role", "admin")
	require.NoError(t, err)

	tokens, err := auth.NewTokens(auth.TokenConfig{Secret: "cli-secret"})
	require.NoError(t, err)
	p, err := tokens.Authenticate("Bearer " + strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, types.Principal{ID: 7, Role: types.RoleAdmin}, p)
}

func TestTokenCommandRejectsBadRole(t *testing.T) {
	_, err := run(t, "--config", "", "token", "--id", "7", "--role", "root")
	require.ErrorContains(t, err, "--role must be")
}
