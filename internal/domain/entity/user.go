package entity

import "time"

// Roles válidos para User. SUPERADMIN no pertenece a ninguna empresa
// (CompanyID vacío); CLIENT puede tener un Client enlazado vía ClientID.
const (
	RoleSuperAdmin = "SUPERADMIN"
	RoleAdmin      = "ADMIN"
	RoleEmployee   = "EMPLOYEE"
	RoleClient     = "CLIENT"
)

// User representa un usuario del sistema (pertenece a una Company, salvo SUPERADMIN).
type User struct {
	ID           string
	CompanyID    string // vacío solo para SUPERADMIN
	Role         string // ver constantes Role*
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Phone        string
	DisplayName  string
	ClientID     *string // solo rol CLIENT: id del Client enlazado (puede faltar)
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
