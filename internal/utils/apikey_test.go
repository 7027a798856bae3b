package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAdminKeyHashRoundTrip(t *testing.T) {
	hash, err := HashAdminKey("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyAdminKey(hash, "s3cret") {
		t.Fatal("correct key rejected")
	}
	if VerifyAdminKey(hash, "wrong") {
		t.Fatal("wrong key accepted")
	}
	if VerifyAdminKey("not-a-hash", "s3cret") {
		t.Fatal("garbage hash accepted")
	}
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewSessionID()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(a) != 64 || len(b) != 64 {
		t.Fatalf("expected 64 hex chars, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Fatal("two session ids collided")
	}
}
