package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ServiOrden-api/internal/application/usecase"
)

// UploadHandler maneja la subida de archivos.
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload POST /api/upload (multipart, campo "file")
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badBody(c)
	}
	f, err := header.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()

	out, err := h.uc.Save(c.UserContext(), GetPrincipal(c), header.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
