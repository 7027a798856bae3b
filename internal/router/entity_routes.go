package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/handler"
)

// RegisterEntities registers the supporting entity endpoints: user
// profiles, licence categories and medical certificates.  Category
// mutation is admin-only; reads are open so the application form can
// list categories without a token.
func RegisterEntities(e *echo.Echo, users *handler.UserHandler, categories *handler.CategoryHandler,
	certificates *handler.CertificateHandler, adminKey echo.MiddlewareFunc) {

	u := e.Group("/v1/users")
	u.POST("", users.Upsert)
	u.GET("/:sub", users.Get)

	c := e.Group("/v1/categories")
	c.GET("", categories.List)
	c.GET("/:code", categories.Get)
	c.POST("", categories.Upsert, adminKey)
	c.DELETE("/:code", categories.Delete, adminKey)

	m := e.Group("/v1/certificates")
	m.POST("", certificates.Upsert)
	m.GET("/:id", certificates.Get)
}

// RegisterSessions registers the session endpoints under /v1/auth.
// Storing a session requires a verified bearer token so the subject
// claim, not the request body, decides ownership; the on-demand
// cleanup is admin-only.
func RegisterSessions(e *echo.Echo, sessions *handler.SessionHandler, identity, adminKey echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/session", sessions.Upsert, identity)
	g.POST("/session/cleanup", sessions.Cleanup, adminKey)
}
