package authz

import (
	"context"

	"github.com/TwigBush/shopgraph/internal/types"
)

type Decision struct {
	Allowed bool
	Reason  string
}

type Request struct {
	Subject types.Principal
	Action  Action
	Owner   *int64 // current owner of the target, nil when unknown or not applicable
}

type Authorizer interface {
	Check(ctx context.Context, req Request) (Decision, error)
}
