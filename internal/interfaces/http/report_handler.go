package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
)

// ReportHandler maneja reportes agregados.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Overview GET /api/companies/:companyID/reports/overview
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext(), GetPrincipal(c), c.Params("companyID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Trends GET /api/companies/:companyID/reports/workorder-trends?from=&to=&group_by=
func (h *ReportHandler) Trends(c *fiber.Ctx) error {
	out, err := h.uc.Trends(c.UserContext(), GetPrincipal(c),
		c.Params("companyID"), c.Query("from"), c.Query("to"), c.Query("group_by"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CompaniesSummary GET /api/superadmin/reports/companies-summary
func (h *ReportHandler) CompaniesSummary(c *fiber.Ctx) error {
	out, err := h.uc.CompaniesSummary(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
