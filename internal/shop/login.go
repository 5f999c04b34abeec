package shop

import (
	"context"
	"errors"
	"strings"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/trace"
	"github.com/TwigBush/shopgraph/internal/types"
	"github.com/TwigBush/shopgraph/internal/validate"
)

// Login exchanges an email and password for a signed credential. Unknown
// emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	if err := validate.Login(email, password); err != nil {
		return AuthPayload{}, err
	}
	log := trace.Logger(ctx, s.log)
	u, err := s.store.Users().FindOne(ctx, types.Filter{Email: strings.TrimSpace(email)})
	if errors.Is(err, types.ErrNotFound) {
		log.Warn("login_failed", "reason", "unknown email")
		return AuthPayload{}, apperr.BadCredentials()
	}
	if err != nil {
		return AuthPayload{}, apperr.Wrap(err)
	}
	if !s.passwords.Matches(u.Password, password) {
		log.Warn("login_failed", "reason", "password mismatch", "user", u.ID)
		return AuthPayload{}, apperr.BadCredentials()
	}
	tok, err := s.tokens.Issue(types.Principal{ID: u.ID, Role: u.Role})
	if err != nil {
		return AuthPayload{}, apperr.Wrap(err)
	}
	log.Info("login", "user", u.ID, "role", u.Role)
	return AuthPayload{Token: tok, User: u}, nil
}
