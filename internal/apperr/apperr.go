// Package apperr is the error taxonomy surfaced to API callers. Error
// messages are returned verbatim, so they are written for end users.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	Unauthenticated
	InvalidCredentials
	Forbidden
	NotFound
	Conflict
	InvalidInput
	OutOfStock
)

var kindNames = map[Kind]string{
	Internal:           "internal",
	Unauthenticated:    "unauthenticated",
	InvalidCredentials: "invalid_credentials",
	Forbidden:          "forbidden",
	NotFound:           "not_found",
	Conflict:           "conflict",
	InvalidInput:       "invalid_input",
	OutOfStock:         "out_of_stock",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Error struct {
	Kind    Kind
	Message string
	Err     error // cause, never shown to callers
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Extensions is reported next to the message in GraphQL error responses.
func (e *Error) Extensions() map[string]any {
	return map[string]any{"code": e.Kind.String()}
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

const (
	MsgAuthRequired       = "Authentication required"
	MsgInvalidToken       = "Invalid token"
	MsgInvalidCredentials = "Invalid email or password"
	MsgOutOfStock         = "Product is out of stock"
	MsgInternal           = "Internal server error"
)

func AuthRequired() *Error { return New(Unauthenticated, MsgAuthRequired) }

func InvalidToken(cause error) *Error {
	return &Error{Kind: Unauthenticated, Message: MsgInvalidToken, Err: cause}
}

func BadCredentials() *Error { return New(InvalidCredentials, MsgInvalidCredentials) }

// Forbid builds the denial for an action phrase such as "create a product".
func Forbid(action string) *Error {
	return New(Forbidden, "You do not have permission to "+action)
}

func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...any) *Error {
	return New(Conflict, fmt.Sprintf(format, args...))
}

func Invalidf(format string, args ...any) *Error {
	return New(InvalidInput, fmt.Sprintf(format, args...))
}

func NoStock() *Error { return New(OutOfStock, MsgOutOfStock) }

// Wrap hides an unexpected failure behind a generic message. Errors that
// already belong to the taxonomy pass through unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: Internal, Message: MsgInternal, Err: err}
}
