package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/application/maintenance"
)

// MaintenanceHandler maneja tareas de mantenimiento preventivo.
type MaintenanceHandler struct {
	uc *maintenance.UseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.UseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Create POST /api/companies/:companyID/preventive_tasks
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePreventiveTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/companies/:companyID/preventive_tasks
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), c.Params("companyID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete POST /api/companies/:companyID/preventive_tasks/:id/complete
func (h *MaintenanceHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
