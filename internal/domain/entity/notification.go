package entity

import "time"

// Tipos de notificación emitidos por la aplicación.
const (
	NotifWorkOrderAssigned      = "work_order_assigned"
	NotifWorkOrderApproved      = "work_order_approved"
	NotifWorkOrderStatusChanged = "work_order_status_changed"
	NotifInvoiceIssued          = "invoice_issued"
)

// Notification representa una notificación in-app dirigida a un usuario.
type Notification struct {
	ID        string
	UserID    string
	CompanyID string
	Type      string
	Payload   map[string]any
	ReadAt    *time.Time
	SentAt    time.Time
	Channel   string // in-app, email, sms
}
