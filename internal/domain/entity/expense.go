package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto interno asociado a una orden de trabajo.
// Los gastos no se suman a los totales de factura cuando hay líneas explícitas;
// se registran aparte para visibilidad de costos.
type Expense struct {
	ID          string
	WorkOrderID string
	CompanyID   string
	Description string
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
	UploadedBy  string
	CreatedAt   time.Time
}
