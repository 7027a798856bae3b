package repository

import (
	"database/sql"
	"reflect"
	"strings"
	"testing"
)

func TestBuildListFilterEmpty(t *testing.T) {
	cond, args := buildListFilter(ListQuery{})
	if cond != "1=1" {
		t.Fatalf("expected 1=1, got %q", cond)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestBuildListFilterStatusAndSearch(t *testing.T) {
	cond, args := buildListFilter(ListQuery{Status: "pending", Search: "APP001"})
	if !strings.HasPrefix(cond, "status = ?") {
		t.Fatalf("expected status predicate first, got %q", cond)
	}
	// One LIKE per searchable column, all lower-cased.
	if got := strings.Count(cond, "LIKE ?"); got != len(searchColumns) {
		t.Fatalf("expected %d LIKE predicates, got %d in %q", len(searchColumns), got, cond)
	}
	want := []any{"pending", "%app001%", "%app001%", "%app001%", "%app001%", "%app001%"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
}

func TestOrderClauseAllowList(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder, want string
	}{
		{"payment_amount", "asc", "payment_amount ASC"},
		{"full_name", "", "full_name DESC"},
		{"created_at", "desc", "created_at DESC"},
		// Anything off the allow-list falls back to created_at.
		{"status; DROP TABLE applications", "asc", "created_at ASC"},
		{"nonexistent", "", "created_at DESC"},
		{"", "", "created_at DESC"},
	}
	for _, c := range cases {
		got := orderClause(ListQuery{SortBy: c.sortBy, SortOrder: c.sortOrder})
		if got != c.want {
			t.Errorf("orderClause(%q, %q) = %q, want %q", c.sortBy, c.sortOrder, got, c.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   sql.NullString
		want int
	}{
		{sql.NullString{Valid: true, String: "42"}, 42},
		{sql.NullString{Valid: true, String: " 7 "}, 7},
		{sql.NullString{Valid: true, String: "abc"}, 0},
		{sql.NullString{Valid: false}, 0},
		{sql.NullString{Valid: true, String: ""}, 0},
	}
	for _, c := range cases {
		if got := parseCount(c.in); got != c.want {
			t.Errorf("parseCount(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNormalizeDoc(t *testing.T) {
	// Plain JSON object comes back structured.
	v := normalizeDoc([]byte(`{"score": 87, "passed": true}`))
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	if m["score"] != float64(87) || m["passed"] != true {
		t.Fatalf("unexpected document: %v", m)
	}

	// Double-encoded legacy value is parsed a second time.
	v = normalizeDoc([]byte(`"{\"score\": 87}"`))
	if m, ok := v.(map[string]any); !ok || m["score"] != float64(87) {
		t.Fatalf("expected inner object from double-encoded text, got %#v", v)
	}

	// Arrays survive.
	v = normalizeDoc([]byte(`[{"code":"B"}]`))
	if _, ok := v.([]any); !ok {
		t.Fatalf("expected array, got %T", v)
	}

	// NULL column stays nil; garbage is returned as text.
	if normalizeDoc(nil) != nil {
		t.Fatal("expected nil for empty column")
	}
	if got := normalizeDoc([]byte("not-json")); got != "not-json" {
		t.Fatalf("expected raw text fallback, got %#v", got)
	}
}

func TestDocShapeChecks(t *testing.T) {
	if !isObjectDoc(map[string]any{"a": 1}) || isObjectDoc([]any{1}) || isObjectDoc("x") {
		t.Fatal("isObjectDoc misclassified")
	}
	if !isArrayDoc([]any{1}) || isArrayDoc(map[string]any{}) || isArrayDoc(42.0) {
		t.Fatal("isArrayDoc misclassified")
	}
}

func TestUpdatableFieldAllowList(t *testing.T) {
	// The allow-list must never expose key or lifecycle columns.
	for _, f := range updatableFields {
		switch f.column {
		case "id", "application_id", "certificate_id", "sub", "status", "admin_status", "created_at", "updated_at":
			t.Errorf("column %q must not be updatable", f.column)
		}
	}
}
