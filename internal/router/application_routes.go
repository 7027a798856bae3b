package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/handler"
)

// RegisterApplications registers the application endpoints under
// /v1/applications.  The read-heavy listing and stats routes go
// through the response cache; the mutating admin routes are guarded
// by the admin key.  Both middlewares degrade to pass-throughs when
// their backing configuration is absent.
//
// Static segments (/stats, /test, /user) are registered alongside the
// /:id parameter route; Echo resolves static segments first, so the
// lookup route never shadows them.
func RegisterApplications(e *echo.Echo, h *handler.ApplicationHandler, cache, adminKey echo.MiddlewareFunc) {
	g := e.Group("/v1/applications")

	g.GET("", h.List, cache)
	g.GET("/stats", h.Stats, cache)
	g.GET("/stats/summary", h.StatsSummary, cache)
	g.GET("/test/data", h.TestData)
	g.GET("/user/:sub", h.ListByUser)
	g.GET("/:id", h.Get)

	g.POST("", h.Submit)
	g.PATCH("/:id/status", h.PatchStatus, adminKey)
	g.PUT("/:id", h.Update, adminKey)
}
