package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswords(t *testing.T) {
	p := Passwords{Cost: bcrypt.MinCost}
	h, err := p.Hash("sophiacarter123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h == "sophiacarter123" {
		t.Fatalf("hash equals plaintext")
	}
	if !p.Matches(h, "sophiacarter123") {
		t.Fatalf("Matches = false for the right password")
	}
	if p.Matches(h, "wrong1") {
		t.Fatalf("Matches = true for the wrong password")
	}
	if p.Matches("not-a-hash", "x") {
		t.Fatalf("Matches = true for a malformed hash")
	}
}
