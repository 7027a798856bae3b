package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/driving-licence-admin/internal/model"
)

// ListQuery defines filters, sorting and pagination for the admin
// application listing.
type ListQuery struct {
	Status    string // exact-match lifecycle status, empty for all
	Search    string // case-insensitive substring over the text columns
	SortBy    string // requested sort column, checked against the allow-list
	SortOrder string // "asc" or "desc" (default)
	Limit     int
	Offset    int
}

// searchColumns are the text columns covered by the substring search.
var searchColumns = []string{"application_id", "certificate_id", "sub", "full_name", "email"}

// sortAllowList maps requested sort names onto real columns.  Any
// name outside the list falls back to created_at, so caller input
// never reaches the ORDER BY clause directly.
var sortAllowList = map[string]string{
	"created_at":     "created_at",
	"updated_at":     "updated_at",
	"application_id": "application_id",
	"full_name":      "full_name",
	"status":         "status",
	"admin_status":   "admin_status",
	"payment_amount": "payment_amount",
}

// buildListFilter renders the WHERE clause shared by the page and
// count queries.
func buildListFilter(q ListQuery) (string, []any) {
	var (
		where []string
		args  []any
	)
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		needle := "%" + strings.ToLower(s) + "%"
		var ors []string
		for _, col := range searchColumns {
			ors = append(ors, "LOWER("+col+") LIKE ?")
			args = append(args, needle)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// orderClause resolves the allow-listed sort column and direction.
func orderClause(q ListQuery) string {
	col, ok := sortAllowList[q.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// List returns one page of applications plus the total count matching
// the same predicate.  The count query runs concurrently with the
// page query; both must succeed.  A failed filtered query surfaces as
// an error: the listing endpoint does not silently degrade to an
// unfiltered result.
func (r *ApplicationRepo) List(ctx context.Context, q ListQuery) ([]model.Application, int, error) {
	cond, args := buildListFilter(q)

	type countResult struct {
		total int
		err   error
	}
	countCh := make(chan countResult, 1)
	go func() {
		var total int
		err := r.store.queryRow(ctx, "application.count",
			"SELECT COUNT(*) FROM applications WHERE "+cond,
			args,
			func(row *sql.Row) error { return row.Scan(&total) })
		countCh <- countResult{total, err}
	}()

	pageArgs := append(append([]any{}, args...), q.Limit, q.Offset)
	out := make([]model.Application, 0, q.Limit)
	err := r.store.query(ctx, "application.list",
		"SELECT "+applicationColumns+" FROM applications WHERE "+cond+
			" ORDER BY "+orderClause(q)+" LIMIT ? OFFSET ?",
		pageArgs,
		func(rows *sql.Rows) error {
			for rows.Next() {
				var a model.Application
				if err := scanApplication(rows.Scan, &a); err != nil {
					return err
				}
				out = append(out, a)
			}
			return nil
		})

	count := <-countCh
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	if count.err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", count.err)
	}
	return out, count.total, nil
}

// Stats returns per-status counts and the grand total in a single
// aggregate query.
func (r *ApplicationRepo) Stats(ctx context.Context) (model.ApplicationStats, error) {
	const stmt = `SELECT
		COUNT(*) AS total,
		SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) AS pending,
		SUM(CASE WHEN status = 'submitted' THEN 1 ELSE 0 END) AS submitted,
		SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END) AS approved,
		SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END) AS rejected,
		SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END) AS cancelled
	FROM applications`

	// SUM comes back from the wire as DECIMAL text (and NULL on an
	// empty table), so each column goes through parseCount.
	var total, pending, submitted, approved, rejected, cancelled sql.NullString
	err := r.store.queryRow(ctx, "application.stats", stmt, nil,
		func(row *sql.Row) error {
			return row.Scan(&total, &pending, &submitted, &approved, &rejected, &cancelled)
		})
	if err != nil {
		return model.ApplicationStats{}, fmt.Errorf("application stats: %w", err)
	}
	return model.ApplicationStats{
		Total:     parseCount(total),
		Pending:   parseCount(pending),
		Submitted: parseCount(submitted),
		Approved:  parseCount(approved),
		Rejected:  parseCount(rejected),
		Cancelled: parseCount(cancelled),
	}, nil
}

// parseCount normalizes a textual count into an int, defaulting to
// zero when the column is NULL or malformed.
func parseCount(ns sql.NullString) int {
	if !ns.Valid {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(ns.String))
	if err != nil {
		return 0
	}
	return n
}
