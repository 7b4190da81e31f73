package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
)

// NotificationHandler maneja notificaciones in-app.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List GET /api/users/:id/notifications?limit=50
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
