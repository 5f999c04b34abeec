package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessagesAreVerbatim(t *testing.T) {
	cases := []struct {
		err  *Error
		kind Kind
		msg  string
	}{
		{AuthRequired(), Unauthenticated, "Authentication required"},
		{InvalidToken(errors.New("sig")), Unauthenticated, "Invalid token"},
		{BadCredentials(), InvalidCredentials, "Invalid email or password"},
		{Forbid("create a product"), Forbidden, "You do not have permission to create a product"},
		{NotFoundf("Product not found"), NotFound, "Product not found"},
		{Conflictf("Category name %s already exists", "Home Decor"), Conflict, "Category name Home Decor already exists"},
		{NoStock(), OutOfStock, "Product is out of stock"},
	}
	for _, tc := range cases {
		if tc.err.Error() != tc.msg {
			t.Fatalf("Error() = %q, want %q", tc.err.Error(), tc.msg)
		}
		if tc.err.Kind != tc.kind {
			t.Fatalf("%q kind = %v, want %v", tc.msg, tc.err.Kind, tc.kind)
		}
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	err := fmt.Errorf("validate: %w", NotFoundf("User not found"))
	if KindOf(err) != NotFound {
		t.Fatalf("KindOf = %v, want not_found", KindOf(err))
	}
	if !Is(err, NotFound) || Is(err, Conflict) {
		t.Fatalf("Is mismatch for %v", err)
	}
	if KindOf(errors.New("boom")) != Internal {
		t.Fatalf("plain error should be internal")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause)
	if err.Error() != MsgInternal {
		t.Fatalf("Wrap message = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("Wrap should keep the cause")
	}
	nf := NotFoundf("Order not found")
	if Wrap(nf) != error(nf) {
		t.Fatalf("Wrap should pass taxonomy errors through")
	}
	if Wrap(nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
}
