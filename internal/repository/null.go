package repository

import (
	"database/sql"
)

// Helpers for moving between nullable columns and pointer fields.

const dateLayout = "2006-01-02"

// nullStr converts an optional string field into a driver argument.
func nullStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// strPtr converts a scanned nullable string into a pointer field.
func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// datePtr renders a scanned nullable DATE column as YYYY-MM-DD.
func datePtr(nt sql.NullTime) *string {
	if !nt.Valid {
		return nil
	}
	s := nt.Time.Format(dateLayout)
	return &s
}
