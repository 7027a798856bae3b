package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestTranslateDBErrorConstraints(t *testing.T) {
	cases := []struct {
		number uint16
		want   error
	}{
		{1062, ErrDuplicate},
		{1452, ErrMissingReference},
		{1048, ErrNullViolation},
	}
	for _, c := range cases {
		in := &mysql.MySQLError{Number: c.number, Message: "boom"}
		got := translateDBError(in)
		if !errors.Is(got, c.want) {
			t.Errorf("code %d: got %v, want %v", c.number, got, c.want)
		}
		// The driver message must survive translation.
		if got.Error() == c.want.Error() {
			t.Errorf("code %d: original message dropped: %q", c.number, got.Error())
		}
	}
}

func TestTranslateDBErrorPassThrough(t *testing.T) {
	other := &mysql.MySQLError{Number: 1205, Message: "lock wait timeout"}
	if got := translateDBError(other); !errors.Is(got, other) {
		t.Fatalf("unrelated MySQL error should pass through, got %v", got)
	}
	plain := errors.New("network down")
	if got := translateDBError(plain); got != plain {
		t.Fatalf("non-MySQL error should pass through, got %v", got)
	}
	if translateDBError(nil) != nil {
		t.Fatal("nil should stay nil")
	}
}

func TestValidationErrorWrapping(t *testing.T) {
	err := fmt.Errorf("save user: %w", validationf("missing required fields: sub"))
	if !IsValidation(err) {
		t.Fatal("wrapped validation error not detected")
	}
	if IsValidation(errors.New("other")) {
		t.Fatal("plain error misdetected as validation")
	}
}
