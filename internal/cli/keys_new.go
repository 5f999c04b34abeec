package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/TwigBush/shopgraph/internal/auth"
)

// generateKey writes a new ES384 key pair into dir as key-<kid>.jwk and
// key-<kid>.pub.jwk and returns the private key path and its kid.
func generateKey(dir string) (path string, kid string, err error) {
	privKey, err := auth.GenerateKey()
	if err != nil {
		return "", "", err
	}
	pubKey, err := jwk.PublicKeyOf(privKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to get public key: %w", err)
	}
	kid, err = auth.Thumbprint(pubKey)
	if err != nil {
		return "", "", err
	}
	if err := pubKey.Set(jwk.KeyIDKey, kid); err != nil {
		return "", "", fmt.Errorf("failed to set public key ID: %w", err)
	}

	privPath := filepath.Join(dir, fmt.Sprintf("key-%s.jwk", kid))
	pubPath := filepath.Join(dir, fmt.Sprintf("key-%s.pub.jwk", kid))

	privJSON, err := json.MarshalIndent(privKey, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal private key: %w", err)
	}
	if err := writeFile(privPath, privJSON, 0o600); err != nil {
		return "", "", err
	}

	pubJSON, err := json.MarshalIndent(pubKey, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	if err := writeFile(pubPath, pubJSON, 0o644); err != nil {
		return "", "", err
	}

	return privPath, kid, nil
}
