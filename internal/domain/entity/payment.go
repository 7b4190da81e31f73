package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago. Card exige ReferenceNumber.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// Payment representa un abono a una orden de trabajo.
// Invariante: la suma de pagos de una orden nunca excede su QuotedPrice.
type Payment struct {
	ID              string
	WorkOrderID     string
	CompanyID       string
	Amount          decimal.Decimal
	Method          string // cash | card
	ReferenceNumber string // obligatorio si Method = card
	ProcessedBy     string
	CreatedAt       time.Time
}
