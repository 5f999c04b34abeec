// Package shop is the mutation orchestrator. Every write runs the same
// pipeline: authenticate, authorize, validate, write, publish.
package shop

import (
	"log/slog"

	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/types"
	"github.com/TwigBush/shopgraph/internal/validate"
)

const DefaultPageSize = 4

type Authenticator interface {
	Authenticate(header string) (types.Principal, error)
}

type Issuer interface {
	Issue(p types.Principal) (string, error)
}

type Hasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}

type Publisher interface {
	Publish(channel string, ev types.Event)
}

type Deps struct {
	Store     types.Store
	Guard     Authenticator
	Tokens    Issuer
	Policy    authz.Authorizer
	Passwords Hasher
	Events    Publisher
	Logger    *slog.Logger
	PageSize  int
	// Observer, when set, sees every stage a mutation passes through.
	Observer func(op string, st Stage)
}

type Service struct {
	store     types.Store
	guard     Authenticator
	tokens    Issuer
	policy    authz.Authorizer
	passwords Hasher
	events    Publisher
	validator *validate.Validator
	log       *slog.Logger
	pageSize  int
	observe   func(op string, st Stage)
}

func New(d Deps) *Service {
	s := &Service{
		store:     d.Store,
		guard:     d.Guard,
		tokens:    d.Tokens,
		policy:    d.Policy,
		passwords: d.Passwords,
		events:    d.Events,
		validator: validate.New(d.Passwords),
		log:       d.Logger,
		pageSize:  d.PageSize,
		observe:   d.Observer,
	}
	if s.policy == nil {
		s.policy = authz.NewPolicy()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.pageSize <= 0 {
		s.pageSize = DefaultPageSize
	}
	return s
}

// Store exposes the backing store for read paths.
func (s *Service) Store() types.Store { return s.store }
