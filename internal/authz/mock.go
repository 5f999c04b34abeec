package authz

import "context"

// Mock is a fixed-answer Authorizer for tests.
type Mock struct {
	AlwaysAllow bool
	Calls       []Request
}

func (m *Mock) Check(ctx context.Context, req Request) (Decision, error) {
	m.Calls = append(m.Calls, req)
	if m.AlwaysAllow {
		return Decision{Allowed: true}, nil
	}
	return Decision{Allowed: false, Reason: "You do not have permission to " + req.Action.Phrase()}, nil
}
