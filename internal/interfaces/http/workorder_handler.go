package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
	"github.com/jhoicas/ServiOrden-api/internal/application/workorder"
)

// WorkOrderHandler maneja órdenes de trabajo y sus comentarios.
type WorkOrderHandler struct {
	uc       *workorder.UseCase
	comments *usecase.CommentUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *workorder.UseCase, comments *usecase.CommentUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc, comments: comments}
}

// Create POST /api/companies/:companyID/workorders
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/companies/:companyID/workorders?status=&assigned_to=&limit=&offset=
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	var q dto.ListWorkOrdersQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), c.Params("companyID"), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/companies/:companyID/workorders/:id
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/companies/:companyID/workorders/:id
func (h *WorkOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve POST /api/companies/:companyID/workorders/:id/approve
func (h *WorkOrderHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateComment POST /api/companies/:companyID/workorders/:id/comments
func (h *WorkOrderHandler) CreateComment(c *fiber.Ctx) error {
	var in dto.CreateCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.comments.Create(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListComments GET /api/companies/:companyID/workorders/:id/comments
func (h *WorkOrderHandler) ListComments(c *fiber.Ctx) error {
	out, err := h.comments.List(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateComment PUT /api/companies/:companyID/comments/:commentID
func (h *WorkOrderHandler) UpdateComment(c *fiber.Ctx) error {
	var in dto.UpdateCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.comments.Update(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("commentID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteComment DELETE /api/companies/:companyID/comments/:commentID
func (h *WorkOrderHandler) DeleteComment(c *fiber.Ctx) error {
	if err := h.comments.Delete(c.UserContext(), GetPrincipal(c), c.Params("companyID"), c.Params("commentID")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "comentario eliminado"})
}
