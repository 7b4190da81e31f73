package entity

import "time"

// Comment representa un comentario sobre una orden de trabajo.
// Editar/borrar: admins del tenant o el propio autor (OwnerID).
type Comment struct {
	ID          string
	CompanyID   string
	WorkOrderID string
	OwnerID     string
	Body        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
