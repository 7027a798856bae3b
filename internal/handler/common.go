package handler // handler defines the HTTP handlers of the admin API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/repository"
)

// Pagination is the envelope returned next to every paginated list.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// newPagination derives the envelope from page, limit and total count.
func newPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && total > 0,
	}
}

// Paging defaults and caps shared by the list endpoints.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageParams reads page/limit query params with defaults and caps.
func pageParams(c echo.Context) (page, limit int) {
	page = atoiDefault(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = atoiDefault(c.QueryParam("limit"), defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// writeError maps a repository error onto the HTTP taxonomy:
// validation and constraint violations are the client's fault (400),
// missing rows are 404, everything else is a 500.  The message always
// carries the underlying cause text.
func writeError(c echo.Context, err error) error {
	switch {
	case repository.IsValidation(err),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrMissingReference),
		errors.Is(err, repository.ErrNullViolation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
