package repository

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// statementTimeout bounds the execution time of every statement
// issued through the store.  It is applied uniformly; callers do not
// get to extend it.
const statementTimeout = 5 * time.Second

// Store is the single funnel for database access.  Every repository
// operation goes through exec/query/queryRow so that timeout
// enforcement, logging and constraint-error translation happen in
// exactly one place.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// DB exposes the underlying pool for schema initialization and tests.
func (s *Store) DB() *sql.DB { return s.db }

// exec runs a mutating statement.  label names the operation in logs.
func (s *Store) exec(ctx context.Context, label, stmt string, args ...any) (sql.Result, error) {
	cctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.db.ExecContext(cctx, stmt, args...)
	logOutcome(label, start, err)
	if err != nil {
		return nil, translateDBError(err)
	}
	return res, nil
}

// query runs a row-returning statement and hands the rows to scan.
// The rows are closed (and the timeout released) when scan returns,
// so scan must consume everything it needs before returning.
func (s *Store) query(ctx context.Context, label, stmt string, args []any, scan func(*sql.Rows) error) error {
	cctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	start := time.Now()
	rows, err := s.db.QueryContext(cctx, stmt, args...)
	logOutcome(label, start, err)
	if err != nil {
		return translateDBError(err)
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		return translateDBError(err)
	}
	return translateDBError(rows.Err())
}

// queryRow runs a single-row lookup.  sql.ErrNoRows is passed through
// untranslated so callers can map it to their own not-found error.
func (s *Store) queryRow(ctx context.Context, label, stmt string, args []any, scan func(*sql.Row) error) error {
	cctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	start := time.Now()
	row := s.db.QueryRowContext(cctx, stmt, args...)
	err := scan(row)
	logOutcome(label, start, err)
	if err == sql.ErrNoRows {
		return err
	}
	return translateDBError(err)
}

func logOutcome(label string, start time.Time, err error) {
	if err != nil && err != sql.ErrNoRows {
		log.Printf("db: %s failed after %s: %v", label, time.Since(start).Round(time.Millisecond), err)
		return
	}
	log.Printf("db: %s ok in %s", label, time.Since(start).Round(time.Millisecond))
}
