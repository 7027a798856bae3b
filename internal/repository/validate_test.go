package repository

import (
	"strings"
	"testing"
)

func TestRequireFieldsListsEveryMissingField(t *testing.T) {
	err := requireFields(
		field{"sub", ""},
		field{"name", "Jane Doe"},
		field{"certificate_id", "   "},
	)
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %T", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "sub") || !strings.Contains(msg, "certificate_id") {
		t.Fatalf("expected both missing fields in message, got %q", msg)
	}
	if strings.Contains(msg, "name") {
		t.Fatalf("did not expect present field in message, got %q", msg)
	}
}

func TestRequireFieldsAllPresent(t *testing.T) {
	if err := requireFields(field{"sub", "auth0|123"}, field{"name", "Jane"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"", true}, // absent email is valid
		{"jane@example.com", true},
		{"jane.doe+tag@sub.example.co", true},
		{"jane", false},
		{"jane@", false},
		{"@example.com", false},
		{"jane@example", false},
		{"jane doe@example.com", false},
	}
	for _, c := range cases {
		if got := validEmail(c.email); got != c.want {
			t.Errorf("validEmail(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}

func TestCheckEmailPointer(t *testing.T) {
	if err := checkEmail(nil); err != nil {
		t.Fatalf("nil email should be valid: %v", err)
	}
	bad := "not-an-email"
	if err := checkEmail(&bad); err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
