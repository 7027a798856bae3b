package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/utils"
)

// AdminKey guards mutating admin routes with a shared API key.  The
// key is presented in the X-Admin-Key header and compared against the
// configured bcrypt hash.  When no hash is configured the middleware
// is a pass-through, matching how the cache middleware degrades.
func AdminKey(keyHash string) echo.MiddlewareFunc {
	if keyHash == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get("X-Admin-Key")
			if key == "" || !utils.VerifyAdminKey(keyHash, key) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid admin key"})
			}
			return next(c)
		}
	}
}
