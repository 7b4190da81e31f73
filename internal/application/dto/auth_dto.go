package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta de usuario (SUPERADMIN cualquier rol; ADMIN solo
// CLIENT/EMPLOYEE de su empresa).
type CreateUserRequest struct {
	CompanyID   string  `json:"company_id"`
	Role        string  `json:"role"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Phone       string  `json:"phone"`
	DisplayName string  `json:"display_name"`
	ClientID    *string `json:"client_id,omitempty"`
}

// UserResponse usuario sin hash de contraseña.
type UserResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id,omitempty"`
	Role        string     `json:"role"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	DisplayName string     `json:"display_name"`
	ClientID    *string    `json:"client_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
