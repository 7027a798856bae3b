// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/handler"
)

// RegisterRoutes registers routes that need no dependencies on the
// provided Echo instance.  Currently that is only the health check,
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
