package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name              string
		page, limit, total int
		wantPages         int
		wantNext, wantPrev bool
	}{
		{"empty", 1, 10, 0, 0, false, false},
		{"single page", 1, 10, 7, 1, false, false},
		{"first of three", 1, 10, 25, 3, true, false},
		{"middle", 2, 10, 25, 3, true, true},
		{"last", 3, 10, 25, 3, false, true},
		{"second of two rows limit one", 2, 1, 2, 2, false, true},
		{"past the end", 5, 10, 25, 3, false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newPagination(c.page, c.limit, c.total)
			if p.TotalPages != c.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, c.wantPages)
			}
			if p.TotalCount != c.total {
				t.Errorf("TotalCount = %d, want %d", p.TotalCount, c.total)
			}
			if p.HasNext != c.wantNext || p.HasPrev != c.wantPrev {
				t.Errorf("HasNext/HasPrev = %v/%v, want %v/%v", p.HasNext, p.HasPrev, c.wantNext, c.wantPrev)
			}
		})
	}
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0&limit=0", 1, 10},
		{"page=-2&limit=1000", 1, 100},
		{"page=abc&limit=xyz", 1, 10},
	}
	e := echo.New()
	for _, c := range cases {
		req := httptest.NewRequest("GET", "/?"+c.query, nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		page, limit := pageParams(ctx)
		if page != c.wantPage || limit != c.wantLimit {
			t.Errorf("query %q: got page=%d limit=%d, want %d/%d", c.query, page, limit, c.wantPage, c.wantLimit)
		}
	}
}
