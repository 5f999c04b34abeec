// Package validate holds the per-mutation checks that run after
// authorization and before any write. Each check reads through the given
// transaction and never writes. The first failing rule wins.
package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/TwigBush/shopgraph/internal/apperr"
	"github.com/TwigBush/shopgraph/internal/types"
)

// PasswordMatcher compares a plaintext password with a stored hash.
type PasswordMatcher interface {
	Matches(hash, plain string) bool
}

type Validator struct {
	passwords PasswordMatcher
}

func New(pw PasswordMatcher) *Validator { return &Validator{passwords: pw} }

const minPasswordLen = 6

// Conflict messages. The orchestrator reuses them when a store's unique key
// catches a duplicate that slipped past the lookup.
const (
	MsgEmailTaken        = "Email already in use"
	MsgEmailTakenByOther = "Email already in use by another user"
	MsgCategoryNameTaken = "Category name already exists"
	MsgCompanyNameTaken  = "Company name already exists"
	MsgDuplicateReview   = "You have already reviewed this product"
)

// CategoryNameTaken is the createCategory conflict, which names the category.
func CategoryNameTaken(name string) string {
	return fmt.Sprintf("Category name %s already exists", name)
}

// find loads one row and turns a missing row into a NotFound error with msg.
func find[T any](ctx context.Context, c types.Collection[T], id int64, msg string) (T, error) {
	v, err := c.Find(ctx, id)
	if errors.Is(err, types.ErrNotFound) {
		return v, apperr.NotFoundf("%s", msg)
	}
	if err != nil {
		return v, err
	}
	return v, nil
}

// required rejects a blank value. Uniqueness lookups must not run on one:
// a zero Filter field selects every row.
func required(value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Invalidf("%s", msg)
	}
	return nil
}

// exists reports whether f selects at least one row.
func exists[T any](ctx context.Context, c types.Collection[T], f types.Filter) (bool, error) {
	_, err := c.FindOne(ctx, f)
	if errors.Is(err, types.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ref checks that a referenced id resolves, reporting msg with the given kind otherwise.
func ref[T any](ctx context.Context, c types.Collection[T], id int64, kind apperr.Kind, msg string) error {
	_, err := c.Find(ctx, id)
	if errors.Is(err, types.ErrNotFound) {
		return apperr.New(kind, msg)
	}
	return err
}

func Login(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperr.Invalidf(msgEmailRequired)
	}
	if password == "" {
		return apperr.Invalidf("Password is required")
	}
	return nil
}

func checkPassword(pw string) error {
	if len(pw) < minPasswordLen {
		return apperr.Invalidf("Password must be at least %d characters long", minPasswordLen)
	}
	if !strings.ContainsFunc(pw, unicode.IsDigit) {
		return apperr.Invalidf("Password must contain at least one number")
	}
	return nil
}

func checkRole(r types.Role) error {
	if !r.Valid() {
		return apperr.Invalidf("Invalid role. Allowed roles are: user, admin")
	}
	return nil
}

func checkRating(r float64) error {
	if r < 0 || r > 5 {
		return apperr.Invalidf("Rating must be between 0 and 5")
	}
	return nil
}

func checkOrderDate(s string) error {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return apperr.Invalidf("Order date must be in YYYY-MM-DD format")
	}
	return nil
}
