package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

const DefaultTTL = 2 * time.Hour

var ErrNoKey = errors.New("auth: either a jwt secret or a signing key is required")

// Claims is the signed credential payload: the principal plus registered
// claims for expiry and replay identification.
type Claims struct {
	ID   int64      `json:"id"`
	Role types.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
	Key    *SigningKey // when set, tokens are ES384 signed and the secret is ignored
}

// Tokens issues credentials at login and verifies them on every guarded call.
type Tokens struct {
	method jwt.SigningMethod
	sign   any
	verify any
	kid    string
	keys   jwk.Set
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokens(cfg TokenConfig) (*Tokens, error) {
	t := &Tokens{ttl: cfg.TTL, issuer: cfg.Issuer, now: time.Now, keys: jwk.NewSet()}
	if t.ttl == 0 {
		t.ttl = DefaultTTL
	}
	switch {
	case cfg.Key != nil:
		t.method = jwt.SigningMethodES384
		t.sign = cfg.Key.Private
		t.verify = &cfg.Key.Private.PublicKey
		t.kid = cfg.Key.KID
		set, err := cfg.Key.JWKS()
		if err != nil {
			return nil, err
		}
		t.keys = set
	case cfg.Secret != "":
		t.method = jwt.SigningMethodHS256
		t.sign = []byte(cfg.Secret)
		t.verify = []byte(cfg.Secret)
	default:
		return nil, ErrNoKey
	}
	return t, nil
}

// Issue signs a credential for p that expires after the configured TTL.
func (t *Tokens) Issue(p types.Principal) (string, error) {
	now := t.now()
	claims := Claims{
		ID:   p.ID,
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    t.issuer,
			Subject:   types.FormatID(p.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	tok := jwt.NewWithClaims(t.method, claims)
	if t.kid != "" {
		tok.Header["kid"] = t.kid
	}
	s, err := tok.SignedString(t.sign)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Authenticate validates the Authorization header value and returns the
// principal it carries.
func (t *Tokens) Authenticate(header string) (types.Principal, error) {
	raw, ok, malformed := bearer(header)
	if malformed {
		return types.Principal{}, apperr.InvalidToken(errors.New("authorization header is not a bearer credential"))
	}
	if !ok {
		return types.Principal{}, apperr.AuthRequired()
	}
	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(raw, claims, t.keyFunc); err != nil {
		return types.Principal{}, apperr.InvalidToken(err)
	}
	if claims.ID <= 0 || !claims.Role.Valid() {
		return types.Principal{}, apperr.InvalidToken(errors.New("token payload lacks id or role"))
	}
	return types.Principal{ID: claims.ID, Role: claims.Role}, nil
}

func (t *Tokens) keyFunc(tok *jwt.Token) (any, error) {
	if tok.Method.Alg() != t.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
	}
	return t.verify, nil
}

// Keys is the public verification key set. It is empty for HMAC tokens.
func (t *Tokens) Keys() jwk.Set { return t.keys }

func (t *Tokens) TTL() time.Duration { return t.ttl }
