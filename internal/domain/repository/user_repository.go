package repository

import "github.com/jhoicas/ServiOrden-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// Las lecturas devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(user *entity.User) error
	FindByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// ListByIDs carga usuarios en batch (enriquecimiento de listados,
	// reemplaza los N+1 del flujo original).
	ListByIDs(ids []string) ([]*entity.User, error)
	List(companyID string) ([]*entity.User, error) // companyID vacío = todos (SUPERADMIN)
	UpdateLastLogin(id string) error
	Delete(id string) error
}
