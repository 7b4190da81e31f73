// Package billing agrupa los cálculos puros de facturación y pagos:
// totales de factura, numeración secuencial por tenant y validación de abonos.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// Prefijos de numeración secuencial por tenant.
const (
	SequenceWorkOrder = "WO"
	SequenceInvoice   = "INV"
)

// FormatNumber da formato al consecutivo: WO-000001, INV-000042.
func FormatNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// InvoiceTotal calcula el total: Σ(items.Amount) + tax. Los gastos NO se
// pliegan al total cuando hay líneas explícitas (se rastrean aparte).
func InvoiceTotal(items []entity.InvoiceItem, tax decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total.Add(tax)
}

// DefaultItems construye las líneas por defecto cuando el caller no las da:
// una línea con el precio cotizado de la orden más una línea por cada gasto
// registrado (comportamiento heredado del flujo de facturación original).
func DefaultItems(quotedPrice decimal.Decimal, expenses []*entity.Expense) []entity.InvoiceItem {
	items := []entity.InvoiceItem{{Description: "Precio cotizado", Amount: quotedPrice}}
	for _, exp := range expenses {
		items = append(items, entity.InvoiceItem{Description: exp.Description, Amount: exp.Amount})
	}
	return items
}

// ValidatePayment valida un abono contra la orden:
// monto > 0, monto <= saldo pendiente, y card exige número de referencia.
// Retorna errores de validación (errors.Is contra domain.ErrInvalidInput).
func ValidatePayment(order *entity.WorkOrder, amount decimal.Decimal, method, referenceNumber string) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.NewValidation("el monto del pago debe ser mayor que cero")
	}
	switch method {
	case entity.PaymentMethodCash:
	case entity.PaymentMethodCard:
		if referenceNumber == "" {
			return domain.NewValidation("los pagos con tarjeta requieren número de referencia")
		}
	default:
		return domain.NewValidation("método de pago inválido: " + method)
	}
	if amount.GreaterThan(order.RemainingBalance()) {
		return domain.NewValidation(fmt.Sprintf(
			"el pago %s excede el saldo pendiente %s",
			amount.StringFixed(2), order.RemainingBalance().StringFixed(2)))
	}
	return nil
}
