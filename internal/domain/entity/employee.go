package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa la ficha laboral de un usuario dentro de una empresa.
type Employee struct {
	ID         string
	CompanyID  string
	UserID     string
	Position   string
	Skills     []string
	HourlyRate decimal.Decimal
	CreatedAt  time.Time
}
