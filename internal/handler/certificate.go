package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/model"
	"github.com/iliyamo/driving-licence-admin/internal/repository"
)

// CertificateHandler exposes medical-certificate endpoints.
type CertificateHandler struct {
	Certificates *repository.CertificateRepo
}

func NewCertificateHandler(certificates *repository.CertificateRepo) *CertificateHandler {
	if certificates == nil {
		panic("nil repository passed to NewCertificateHandler")
	}
	return &CertificateHandler{Certificates: certificates}
}

// Upsert handles POST "": record or refresh a certificate keyed by
// certificate_id.
func (h *CertificateHandler) Upsert(c echo.Context) error {
	var m model.MedicalCertificate
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	saved, err := h.Certificates.Upsert(c.Request().Context(), &m)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Get handles GET /:id.
func (h *CertificateHandler) Get(c echo.Context) error {
	m, err := h.Certificates.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
