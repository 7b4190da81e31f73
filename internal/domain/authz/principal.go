package authz

import "github.com/jhoicas/ServiOrden-api/internal/domain"

// Role es el conjunto cerrado de roles del sistema. Se modela como tipo
// propio (no string plano) para que la tabla de reglas haga match explícito.
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEmployee   Role = "EMPLOYEE"
	RoleClient     Role = "CLIENT"
)

// ParseRole convierte un string persistido en Role, validando que sea uno de
// los cuatro roles conocidos.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", domain.NewValidation("rol desconocido: " + s)
	}
	return r, nil
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

func (r Role) in(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Principal es el actor autenticado de la petición. Se construye una vez por
// request (resolver + caché) y es inmutable durante su ciclo de vida.
type Principal struct {
	UserID    string
	CompanyID string  // vacío solo para SUPERADMIN
	Role      Role
	ClientID  *string // solo rol CLIENT: id del Client enlazado (puede faltar)
}
