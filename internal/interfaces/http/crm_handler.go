package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
)

// CRMHandler maneja clientes, empleados y vehículos del tenant.
type CRMHandler struct {
	uc *usecase.CRMUseCase
}

// NewCRMHandler construye el handler.
func NewCRMHandler(uc *usecase.CRMUseCase) *CRMHandler {
	return &CRMHandler{uc: uc}
}

// CreateClient POST /api/companies/:companyID/clients
func (h *CRMHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateClient(c.UserContext(), GetPrincipal(c), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListClients GET /api/companies/:companyID/clients
func (h *CRMHandler) ListClients(c *fiber.Ctx) error {
	out, err := h.uc.ListClients(c.UserContext(), GetPrincipal(c), c.Params("companyID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateEmployee POST /api/companies/:companyID/employees
func (h *CRMHandler) CreateEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateEmployee(c.UserContext(), GetPrincipal(c), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmployees GET /api/companies/:companyID/employees
func (h *CRMHandler) ListEmployees(c *fiber.Ctx) error {
	out, err := h.uc.ListEmployees(c.UserContext(), GetPrincipal(c), c.Params("companyID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateVehicle POST /api/companies/:companyID/vehicles
func (h *CRMHandler) CreateVehicle(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateVehicle(c.UserContext(), GetPrincipal(c), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVehicles GET /api/companies/:companyID/vehicles
func (h *CRMHandler) ListVehicles(c *fiber.Ctx) error {
	out, err := h.uc.ListVehicles(c.UserContext(), GetPrincipal(c), c.Params("companyID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
