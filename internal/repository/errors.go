// Package repository is the record access layer: typed operations
// over the five entities, each validating its input, building a
// parameterized statement, executing it through the shared Store and
// shaping the returned rows.  The error values defined here let
// handlers pick the right HTTP status without parsing messages.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a by-key lookup matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a statement violates a uniqueness
// constraint (MySQL error 1062).
var ErrDuplicate = errors.New("duplicate entry")

// ErrMissingReference is returned when a statement violates a foreign
// key constraint (MySQL error 1452).
var ErrMissingReference = errors.New("referenced record does not exist")

// ErrNullViolation is returned when a statement writes NULL into a
// NOT NULL column (MySQL error 1048).
var ErrNullViolation = errors.New("required field missing")

// MySQL server error numbers translated into domain errors.
const (
	mysqlErrDupEntry      = 1062
	mysqlErrNoReferenced  = 1452
	mysqlErrBadNullColumn = 1048
)

// translateDBError maps the three constraint-violation conditions
// onto their domain errors, keeping the driver message as context.
// Everything else propagates unchanged.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlErrDupEntry:
			return fmt.Errorf("%w: %s", ErrDuplicate, me.Message)
		case mysqlErrNoReferenced:
			return fmt.Errorf("%w: %s", ErrMissingReference, me.Message)
		case mysqlErrBadNullColumn:
			return fmt.Errorf("%w: %s", ErrNullViolation, me.Message)
		}
	}
	return err
}

// ValidationError marks input problems detected before any statement
// executes.  Handlers should translate it into an HTTP 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
