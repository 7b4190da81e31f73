package usecase

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// FileStore puerto de almacenamiento de archivos subidos.
type FileStore interface {
	Save(name string, r io.Reader) (string, error)
}

// UploadUseCase subida de archivos (recibos de gastos, adjuntos). Cualquier
// usuario autenticado puede subir; el archivo se guarda bajo un uuid propio,
// nunca con el nombre que mandó el cliente.
type UploadUseCase struct {
	files FileStore
	log   *logger.Logger
}

// NewUploadUseCase crea el caso de uso de subida de archivos.
func NewUploadUseCase(files FileStore, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{files: files, log: log}
}

// Save almacena el contenido y devuelve el identificador y la ruta final.
// Solo se conserva la extensión del nombre original.
func (uc *UploadUseCase) Save(ctx context.Context, p authz.Principal, filename string, r io.Reader) (*dto.UploadResponse, error) {
	if filename == "" {
		return nil, domain.NewValidation("el archivo no tiene nombre")
	}

	fileID := uuid.NewString()
	stored := fileID + filepath.Ext(filename)
	path, err := uc.files.Save(stored, r)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("file_id", fileID).
		Str("filename", filename).
		Str("uploaded_by", p.UserID).
		Msg("archivo subido")

	return &dto.UploadResponse{
		FileID:   fileID,
		Filename: filename,
		Path:     path,
	}, nil
}
