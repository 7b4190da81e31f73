package auth

import (
	"context"
	"time"
)

// PrincipalSnapshot es la proyección mínima del usuario que se cachea entre
// requests. Solo campos que la autorización necesita; nunca el hash de
// contraseña.
type PrincipalSnapshot struct {
	Role      string  `json:"role"`
	CompanyID string  `json:"company_id"`
	ClientID  *string `json:"client_id,omitempty"`
	IsActive  bool    `json:"is_active"`
}

// PrincipalCache es el puerto de la caché de principals. Get devuelve
// (nil, nil) en cache miss; los errores de infraestructura se reportan pero
// el resolver siempre puede caer al repositorio.
type PrincipalCache interface {
	Get(ctx context.Context, userID string) (*PrincipalSnapshot, error)
	Put(ctx context.Context, userID string, snap PrincipalSnapshot, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}
