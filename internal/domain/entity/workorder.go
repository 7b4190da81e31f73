package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	WorkOrderDraft      = "DRAFT"
	WorkOrderPending    = "PENDING"
	WorkOrderApproved   = "APPROVED"
	WorkOrderInProgress = "IN_PROGRESS"
	WorkOrderCompleted  = "COMPLETED"
	WorkOrderCancelled  = "CANCELLED"
)

// Prioridades de una orden de trabajo.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// WorkOrder representa una orden de trabajo de la empresa.
// AssetCode es obligatorio cuando la industria del tenant es technical_solutions.
type WorkOrder struct {
	ID                  string
	CompanyID           string
	OrderNumber         string // secuencial por tenant, formato WO-%06d
	Title               string
	Description         string
	CreatedBy           string
	RequestedByClientID *string
	VehicleID           *string
	AssignedTechnicians []string // ids de usuarios técnicos
	Status              string   // ver constantes WorkOrder*
	Priority            string   // ver constantes Priority*
	AssetCode           string
	StartDate           *time.Time
	EndDate             *time.Time
	ScheduledDate       *time.Time
	EstimatedCost       decimal.Decimal
	QuotedPrice         decimal.Decimal
	PaidAmount          decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsAssignedTo indica si el técnico está en la lista de asignados.
func (w *WorkOrder) IsAssignedTo(userID string) bool {
	for _, id := range w.AssignedTechnicians {
		if id == userID {
			return true
		}
	}
	return false
}

// RemainingBalance devuelve el saldo pendiente de pago (quoted - paid).
func (w *WorkOrder) RemainingBalance() decimal.Decimal {
	return w.QuotedPrice.Sub(w.PaidAmount)
}
