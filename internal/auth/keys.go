package auth

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// SigningKey is an EC P-384 key used for ES384 credentials. KID is the
// RFC 7638 thumbprint of the public half.
type SigningKey struct {
	KID     string
	Private *ecdsa.PrivateKey
	Public  jwk.Key
}

// GenerateKey creates a new P-384 key as a private JWK with alg and kid set.
func GenerateKey() (jwk.Key, error) {
	raw, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	priv, err := jwk.Import(raw)
	if err != nil {
		return nil, fmt.Errorf("import private key: %w", err)
	}
	if err := priv.Set(jwk.AlgorithmKey, jwa.ES384()); err != nil {
		return nil, fmt.Errorf("set algorithm: %w", err)
	}
	pub, err := jwk.PublicKeyOf(priv)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	kid, err := Thumbprint(pub)
	if err != nil {
		return nil, err
	}
	if err := priv.Set(jwk.KeyIDKey, kid); err != nil {
		return nil, fmt.Errorf("set key id: %w", err)
	}
	return priv, nil
}

func Thumbprint(key jwk.Key) (string, error) {
	tp, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("compute thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(tp), nil
}

// NewSigningKey wraps a private EC JWK.
func NewSigningKey(priv jwk.Key) (*SigningKey, error) {
	var raw any
	if err := jwk.Export(priv, &raw); err != nil {
		return nil, fmt.Errorf("export key: %w", err)
	}
	var ec *ecdsa.PrivateKey
	switch k := raw.(type) {
	case *ecdsa.PrivateKey:
		ec = k
	case ecdsa.PrivateKey:
		ec = &k
	default:
		return nil, fmt.Errorf("signing key must be an EC private key, got %T", raw)
	}
	if ec.Curve != elliptic.P384() {
		return nil, fmt.Errorf("signing key must use P-384")
	}

	pub, err := jwk.PublicKeyOf(priv)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	kid, err := Thumbprint(pub)
	if err != nil {
		return nil, err
	}
	if err := pub.Set(jwk.KeyIDKey, kid); err != nil {
		return nil, fmt.Errorf("set key id: %w", err)
	}
	if err := pub.Set(jwk.AlgorithmKey, jwa.ES384()); err != nil {
		return nil, fmt.Errorf("set algorithm: %w", err)
	}
	return &SigningKey{KID: kid, Private: ec, Public: pub}, nil
}

// LoadSigningKey reads a private JWK written by "shopgraph keys new".
func LoadSigningKey(path string) (*SigningKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}
	key, err := jwk.ParseKey(b)
	if err != nil {
		return nil, fmt.Errorf("parse signing key %s: %w", path, err)
	}
	return NewSigningKey(key)
}

func (k *SigningKey) JWKS() (jwk.Set, error) {
	set := jwk.NewSet()
	if err := set.AddKey(k.Public); err != nil {
		return nil, fmt.Errorf("build key set: %w", err)
	}
	return set, nil
}
