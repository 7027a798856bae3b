package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/model"
	"github.com/iliyamo/driving-licence-admin/internal/queue"
	"github.com/iliyamo/driving-licence-admin/internal/repository"
	"github.com/iliyamo/driving-licence-admin/internal/service"
)

// ApplicationHandler bundles the application endpoints around their
// repository.
type ApplicationHandler struct {
	Apps *repository.ApplicationRepo
}

func NewApplicationHandler(apps *repository.ApplicationRepo) *ApplicationHandler {
	if apps == nil {
		panic("nil repository passed to NewApplicationHandler")
	}
	return &ApplicationHandler{Apps: apps}
}

// List handles GET "": the filtered, sorted, paginated admin listing.
// Query params: page, limit, status, search, sortBy, sortOrder.
func (h *ApplicationHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	status := strings.TrimSpace(c.QueryParam("status"))
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter: " + status})
	}

	rows, total, err := h.Apps.List(c.Request().Context(), repository.ListQuery{
		Status:    status,
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"applications": rows,
		"pagination":   newPagination(page, limit, total),
	})
}

// Stats handles GET /stats: the dashboard counters.
func (h *ApplicationHandler) Stats(c echo.Context) error {
	s, err := h.Apps.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{
			"total":    s.Total,
			"pending":  s.Pending,
			"approved": s.Approved,
			"rejected": s.Rejected,
		},
	})
}

// StatsSummary handles GET /stats/summary: the full per-status map.
func (h *ApplicationHandler) StatsSummary(c echo.Context) error {
	s, err := h.Apps.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total": s.Total,
		"byStatus": echo.Map{
			model.StatusPending:   s.Pending,
			model.StatusSubmitted: s.Submitted,
			model.StatusApproved:  s.Approved,
			model.StatusRejected:  s.Rejected,
			model.StatusCancelled: s.Cancelled,
		},
	})
}

// Get handles GET /:id: lookup by application id, numeric primary id
// or certificate id.
func (h *ApplicationHandler) Get(c echo.Context) error {
	a, err := h.Apps.GetByKey(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

type statusReq struct {
	Status      string `json:"status"`
	AdminStatus string `json:"admin_status"`
}

// PatchStatus handles PATCH /:id/status.  The body carries either a
// lifecycle status or an admin_status; both are validated against
// their enumerated sets before any write.
func (h *ApplicationHandler) PatchStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Status == "" && req.AdminStatus == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status: " + req.Status})
	}
	if req.AdminStatus != "" && !model.ValidAdminStatus(req.AdminStatus) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid admin_status: " + req.AdminStatus})
	}

	ctx := c.Request().Context()
	var (
		a   model.Application
		err error
	)
	if req.Status != "" {
		a, err = h.Apps.UpdateStatus(ctx, c.Param("id"), req.Status)
	}
	if err == nil && req.AdminStatus != "" {
		a, err = h.Apps.UpdateAdminStatus(ctx, c.Param("id"), req.AdminStatus)
	}
	if err != nil {
		return writeError(c, err)
	}

	// Best-effort event; a broker outage must not fail the update.
	_ = service.PublishStatusChanged(ctx, queue.StatusChangedEvent{
		ApplicationID: a.ApplicationID,
		Sub:           a.Sub,
		FullName:      a.FullName,
		Status:        a.Status,
		AdminStatus:   a.AdminStatus,
		ChangedAt:     time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, a)
}

// Update handles PUT /:id: a partial update over the allow-listed
// field set.  Unknown fields are ignored; a body with nothing usable
// is a 400.
func (h *ApplicationHandler) Update(c echo.Context) error {
	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Apps.PartialUpdate(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// ListByUser handles GET /user/:sub: one applicant's applications.
func (h *ApplicationHandler) ListByUser(c echo.Context) error {
	page, limit := pageParams(c)
	rows, total, err := h.Apps.ListByUser(c.Request().Context(), c.Param("sub"), limit, (page-1)*limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"applications": rows,
		"pagination":   newPagination(page, limit, total),
	})
}

// Submit handles POST "": a new application.  The payload is the
// denormalized snapshot; the repository owns all validation.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var a model.Application
	if err := c.Bind(&a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	saved, err := h.Apps.Save(c.Request().Context(), &a)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// TestData handles GET /test/data: a static fixture payload for
// frontend smoke tests.  No persistence is touched.
func (h *ApplicationHandler) TestData(c echo.Context) error {
	return c.JSON(http.StatusOK, testFixture())
}

func testFixture() echo.Map {
	return echo.Map{
		"application": echo.Map{
			"application_id": "APP-TEST-001",
			"certificate_id": "CERT-TEST-001",
			"sub":            "auth0|test-user",
			"full_name":      "Test Applicant",
			"email":          "test.applicant@example.com",
			"status":         model.StatusPending,
			"admin_status":   model.AdminUnverified,
			"selected_categories": []echo.Map{
				{"code": "B", "label": "Car", "fee": 60.00},
			},
			"written_test":   echo.Map{"score": 87, "passed": true},
			"practical_test": echo.Map{"score": 92, "passed": true},
			"payment_amount": 60.00,
		},
		"generated": true,
	}
}
