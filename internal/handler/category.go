package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/model"
	"github.com/iliyamo/driving-licence-admin/internal/repository"
)

// CategoryHandler exposes licence-category endpoints.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo) *CategoryHandler {
	if categories == nil {
		panic("nil repository passed to NewCategoryHandler")
	}
	return &CategoryHandler{Categories: categories}
}

// List handles GET "".  Soft-deleted categories are included only
// with ?all=true.
func (h *CategoryHandler) List(c echo.Context) error {
	all := c.QueryParam("all") == "true"
	cats, err := h.Categories.List(c.Request().Context(), all)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// Upsert handles POST "": add or update a category keyed by code.
func (h *CategoryHandler) Upsert(c echo.Context) error {
	var cat model.LicenceCategory
	if err := c.Bind(&cat); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	saved, err := h.Categories.Upsert(c.Request().Context(), &cat)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Get handles GET /:code: resolves soft-deleted categories too.
func (h *CategoryHandler) Get(c echo.Context) error {
	cat, err := h.Categories.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /:code: a soft delete flipping is_active.
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.Categories.SoftDelete(c.Request().Context(), c.Param("code")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
