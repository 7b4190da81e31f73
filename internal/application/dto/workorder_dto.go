package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// CreateWorkOrderRequest alta de orden de trabajo. AssetCode es obligatorio
// para tenants technical_solutions (validación, no autorización).
type CreateWorkOrderRequest struct {
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	RequestedByClientID *string         `json:"requested_by_client_id,omitempty"`
	VehicleID           *string         `json:"vehicle_id,omitempty"`
	AssignedTechnicians []string        `json:"assigned_technicians"`
	Priority            string          `json:"priority"`
	AssetCode           string          `json:"asset_code"`
	StartDate           *time.Time      `json:"start_date,omitempty"`
	EndDate             *time.Time      `json:"end_date,omitempty"`
	ScheduledDate       *time.Time      `json:"scheduled_date,omitempty"`
	EstimatedCost       decimal.Decimal `json:"estimated_cost"`
	QuotedPrice         decimal.Decimal `json:"quoted_price"`
}

// UpdateWorkOrderRequest actualización parcial: solo los campos no-nil se
// aplican (mismo contrato que el PUT original).
type UpdateWorkOrderRequest struct {
	Title               *string          `json:"title,omitempty"`
	Description         *string          `json:"description,omitempty"`
	RequestedByClientID *string          `json:"requested_by_client_id,omitempty"`
	VehicleID           *string          `json:"vehicle_id,omitempty"`
	AssignedTechnicians *[]string        `json:"assigned_technicians,omitempty"`
	Status              *string          `json:"status,omitempty"`
	Priority            *string          `json:"priority,omitempty"`
	AssetCode           *string          `json:"asset_code,omitempty"`
	StartDate           *time.Time       `json:"start_date,omitempty"`
	EndDate             *time.Time       `json:"end_date,omitempty"`
	ScheduledDate       *time.Time       `json:"scheduled_date,omitempty"`
	EstimatedCost       *decimal.Decimal `json:"estimated_cost,omitempty"`
	QuotedPrice         *decimal.Decimal `json:"quoted_price,omitempty"`
}

// ListWorkOrdersQuery filtros de listado.
type ListWorkOrdersQuery struct {
	Status     string `query:"status"`
	AssignedTo string `query:"assigned_to"`
	PageRequest
}

// WorkOrderResponse orden de trabajo, con los nombres de los técnicos
// asignados enriquecidos en batch.
type WorkOrderResponse struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"`
	OrderNumber         string          `json:"order_number"`
	Title               string          `json:"title"`
	Description         string          `json:"description,omitempty"`
	CreatedBy           string          `json:"created_by"`
	RequestedByClientID *string         `json:"requested_by_client_id,omitempty"`
	VehicleID           *string         `json:"vehicle_id,omitempty"`
	AssignedTechnicians []string        `json:"assigned_technicians"`
	TechnicianNames     []string        `json:"technician_names,omitempty"`
	Status              string          `json:"status"`
	Priority            string          `json:"priority"`
	AssetCode           string          `json:"asset_code,omitempty"`
	StartDate           *time.Time      `json:"start_date,omitempty"`
	EndDate             *time.Time      `json:"end_date,omitempty"`
	ScheduledDate       *time.Time      `json:"scheduled_date,omitempty"`
	EstimatedCost       decimal.Decimal `json:"estimated_cost"`
	QuotedPrice         decimal.Decimal `json:"quoted_price"`
	PaidAmount          decimal.Decimal `json:"paid_amount"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CommentResponse comentario de una orden.
type CommentResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	WorkOrderID string    `json:"work_order_id"`
	OwnerID     string    `json:"owner_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommentRequest alta de comentario.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// UpdateCommentRequest edición de comentario.
type UpdateCommentRequest struct {
	Body string `json:"body"`
}

// InvoiceItemDTO línea de factura (entrada y salida).
type InvoiceItemDTO = entity.InvoiceItem
