package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceDraft     = "DRAFT"
	InvoiceIssued    = "ISSUED"
	InvoicePaid      = "PAID"
	InvoiceCancelled = "CANCELLED"
)

// InvoiceItem es una línea de la factura.
type InvoiceItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice representa la factura de una orden de trabajo.
// Invariante: TotalAmount = Σ(items.Amount) + TaxAmount, recalculado al crear;
// nunca diverge de sus líneas salvo actualización explícita.
type Invoice struct {
	ID            string
	CompanyID     string
	WorkOrderID   string
	InvoiceNumber string // secuencial por tenant, formato INV-%06d
	Items         []InvoiceItem
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        string // ver constantes Invoice*
	IssuedDate    *time.Time
	DueDate       *time.Time
	CreatedAt     time.Time
}
