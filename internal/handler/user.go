package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/model"
	"github.com/iliyamo/driving-licence-admin/internal/repository"
)

// UserHandler exposes applicant profile endpoints.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(users *repository.UserRepo) *UserHandler {
	if users == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users}
}

// Upsert handles POST "": create or refresh a profile keyed by sub.
func (h *UserHandler) Upsert(c echo.Context) error {
	var u model.User
	if err := c.Bind(&u); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	saved, err := h.Users.Upsert(c.Request().Context(), &u)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Get handles GET /:sub.
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.Users.GetBySub(c.Request().Context(), c.Param("sub"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
