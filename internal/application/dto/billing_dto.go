package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// CreateInvoiceRequest alta de factura sobre una orden. Sin Items, se factura
// el precio cotizado de la orden más los gastos registrados.
type CreateInvoiceRequest struct {
	WorkOrderID string               `json:"work_order_id"`
	Items       []entity.InvoiceItem `json:"items"`
	TaxAmount   decimal.Decimal      `json:"tax_amount"`
	DueDays     int                  `json:"due_days"`
}

// InvoiceResponse factura.
type InvoiceResponse struct {
	ID            string               `json:"id"`
	CompanyID     string               `json:"company_id"`
	WorkOrderID   string               `json:"work_order_id"`
	InvoiceNumber string               `json:"invoice_number"`
	Items         []entity.InvoiceItem `json:"items"`
	TaxAmount     decimal.Decimal      `json:"tax_amount"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	Status        string               `json:"status"`
	IssuedDate    *time.Time           `json:"issued_date,omitempty"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// CreateExpenseRequest alta de gasto interno sobre una orden.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        *time.Time      `json:"date,omitempty"`
}

// ExpenseResponse gasto interno.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	WorkOrderID string          `json:"work_order_id"`
	CompanyID   string          `json:"company_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	UploadedBy  string          `json:"uploaded_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProcessPaymentRequest abono a una orden de trabajo.
type ProcessPaymentRequest struct {
	WorkOrderID     string          `json:"work_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"payment_method"` // cash | card
	ReferenceNumber string          `json:"reference_number"`
}

// PaymentResponse abono registrado, con el saldo resultante de la orden.
type PaymentResponse struct {
	ID              string          `json:"id"`
	WorkOrderID     string          `json:"work_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}
