package shop

import (
	"context"
	"errors"
	"log/slog"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/auth"
	"github.com/TwigBush/shopgraph/internal/authz"
	"github.com/TwigBush/shopgraph/internal/trace"
	"github.com/TwigBush/shopgraph/internal/types"
)

type Stage int

const (
	Pending Stage = iota
	Authenticating
	Authorizing
	Validating
	Writing
	Publishing
	Done
	Aborted
)

var stageNames = [...]string{"PENDING", "AUTHENTICATING", "AUTHORIZING", "VALIDATING", "WRITING", "PUBLISHING", "DONE", "ABORTED"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "UNKNOWN"
}

type publication struct {
	channel string
	kind    types.MutationKind
}

// mutation describes one invocation. validate and write share state through
// the closures that build them; both run inside the same unit of work.
type mutation[T any] struct {
	op     string
	action authz.Action // empty for public operations
	// owner returns the current owner of the target, nil when it has none.
	owner    func(ctx context.Context, tx types.Tx) (*int64, error)
	validate func(ctx context.Context, tx types.Tx, p types.Principal) error
	write    func(ctx context.Context, tx types.Tx) (T, error)
	// publish lists where the committed result is announced.
	publish func(v T) []publication
	// unique maps store unique keys the write can trip to the conflict
	// message for this operation.
	unique map[string]string
}

// conflict reports a duplicate caught by the store's unique key the same way
// validation reports one it finds first.
func (m *mutation[T]) conflict(err error) error {
	var dup *types.DuplicateError
	if errors.As(err, &dup) {
		if msg, ok := m.unique[dup.Key]; ok {
			return apperr.New(apperr.Conflict, msg)
		}
	}
	return err
}

type tracker struct {
	s     *Service
	log   *slog.Logger
	op    string
	stage Stage
}

func (t *tracker) to(st Stage) {
	t.log.Debug("mutation_stage", "op", t.op, "from", t.stage, "to", st)
	t.stage = st
	if t.s.observe != nil {
		t.s.observe(t.op, st)
	}
}

func (t *tracker) abort(err error) error {
	at := t.stage
	err = apperr.Wrap(err)
	t.to(Aborted)
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		t.log.Error("mutation_aborted", "op", t.op, "stage", at, "kind", kind, "err", err, "cause", errors.Unwrap(err))
	} else {
		t.log.Warn("mutation_aborted", "op", t.op, "stage", at, "kind", kind, "err", err)
	}
	return err
}

func run[T any](ctx context.Context, s *Service, m mutation[T]) (T, error) {
	var zero T
	t := &tracker{s: s, log: trace.Logger(ctx, s.log), op: m.op}
	if s.observe != nil {
		s.observe(m.op, Pending)
	}

	t.to(Authenticating)
	var principal types.Principal
	if m.action != "" {
		p, err := s.guard.Authenticate(auth.HeaderFrom(ctx))
		if err != nil {
			return zero, t.abort(err)
		}
		principal = p
	}

	var out T
	err := s.store.WithTx(ctx, func(tx types.Tx) error {
		t.to(Authorizing)
		if m.action != "" {
			var owner *int64
			if m.owner != nil {
				o, err := m.owner(ctx, tx)
				if err != nil {
					return err
				}
				owner = o
			}
			d, err := s.policy.Check(ctx, authz.Request{Subject: principal, Action: m.action, Owner: owner})
			if err != nil {
				return err
			}
			if !d.Allowed {
				t.log.Debug("mutation_denied", "op", m.op, "reason", d.Reason)
				return apperr.Forbid(m.action.Phrase())
			}
		}

		t.to(Validating)
		if m.validate != nil {
			if err := m.validate(ctx, tx, principal); err != nil {
				return err
			}
		}

		t.to(Writing)
		v, err := m.write(ctx, tx)
		if err != nil {
			return m.conflict(err)
		}
		out = v
		return nil
	})
	if err != nil {
		return zero, t.abort(err)
	}

	t.to(Publishing)
	if m.publish != nil && s.events != nil {
		for _, pub := range m.publish(out) {
			s.events.Publish(pub.channel, types.Event{Mutation: pub.kind, Data: out})
		}
	}
	t.to(Done)
	t.log.Info("mutation", "op", m.op, "id", idOf(out), "principal", principal.ID, "role", principal.Role)
	return out, nil
}

// idOf returns the id of the row a mutation returned.
func idOf(v any) int64 {
	switch v := v.(type) {
	case types.User:
		return v.ID
	case types.Category:
		return v.ID
	case types.Product:
		return v.ID
	case types.Company:
		return v.ID
	case types.Order:
		return v.ID
	case types.Review:
		return v.ID
	}
	return 0
}

// ownerOf looks up the owner of a row for ownership checks. A missing row has
// no owner.
func ownerOf[T any](c func(types.Tx) types.Collection[T], id int64, owner func(T) int64) func(context.Context, types.Tx) (*int64, error) {
	return func(ctx context.Context, tx types.Tx) (*int64, error) {
		v, err := c(tx).Find(ctx, id)
		if errors.Is(err, types.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		o := owner(v)
		return &o, nil
	}
}
