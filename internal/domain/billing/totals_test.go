package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/billing"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Totales de factura
// ──────────────────────────────────────────────────────────────────────────────

// Vector del spec de pruebas: items [100, 250] + tax 17.5 = 367.5.
func TestInvoiceTotal_VectorExacto(t *testing.T) {
	items := []entity.InvoiceItem{
		{Description: "Mano de obra", Amount: decimal.NewFromInt(100)},
		{Description: "Repuestos", Amount: decimal.NewFromInt(250)},
	}
	tax := decimal.NewFromFloat(17.5)

	total := billing.InvoiceTotal(items, tax)
	assert.True(t, total.Equal(decimal.NewFromFloat(367.5)),
		"total esperado 367.5, obtenido %s", total)
}

func TestInvoiceTotal_SinItems_SoloImpuesto(t *testing.T) {
	total := billing.InvoiceTotal(nil, decimal.NewFromInt(19))
	assert.True(t, total.Equal(decimal.NewFromInt(19)))
}

// Sin líneas explícitas: una línea con el precio cotizado más una por gasto.
func TestDefaultItems_PrecioCotizadoMasGastos(t *testing.T) {
	expenses := []*entity.Expense{
		{Description: "Pintura", Amount: decimal.NewFromInt(40)},
		{Description: "Transporte", Amount: decimal.NewFromInt(15)},
	}
	items := billing.DefaultItems(decimal.NewFromInt(500), expenses)

	require.Len(t, items, 3)
	assert.Equal(t, "Precio cotizado", items[0].Description)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(500)))

	total := billing.InvoiceTotal(items, decimal.Zero)
	assert.True(t, total.Equal(decimal.NewFromInt(555)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatNumber_CeroPaddingFijo(t *testing.T) {
	assert.Equal(t, "WO-000001", billing.FormatNumber(billing.SequenceWorkOrder, 1))
	assert.Equal(t, "INV-000042", billing.FormatNumber(billing.SequenceInvoice, 42))
	assert.Equal(t, "INV-1000000", billing.FormatNumber(billing.SequenceInvoice, 1000000),
		"por encima del ancho el número crece sin truncarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de pagos
// ──────────────────────────────────────────────────────────────────────────────

func orderWithBalance(quoted, paid int64) *entity.WorkOrder {
	return &entity.WorkOrder{
		QuotedPrice: decimal.NewFromInt(quoted),
		PaidAmount:  decimal.NewFromInt(paid),
	}
}

// Frontera del spec de pruebas: quoted 500, paid 450 → 60 se rechaza, 50 pasa.
func TestValidatePayment_FronteraDeSaldo(t *testing.T) {
	order := orderWithBalance(500, 450)

	err := billing.ValidatePayment(order, decimal.NewFromInt(60), entity.PaymentMethodCash, "")
	require.Error(t, err, "60 excede el saldo pendiente de 50")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = billing.ValidatePayment(order, decimal.NewFromInt(50), entity.PaymentMethodCash, "")
	assert.NoError(t, err, "50 cubre exactamente el saldo y debe aceptarse")
}

func TestValidatePayment_MontoNoPositivo(t *testing.T) {
	order := orderWithBalance(500, 0)
	assert.Error(t, billing.ValidatePayment(order, decimal.Zero, entity.PaymentMethodCash, ""))
	assert.Error(t, billing.ValidatePayment(order, decimal.NewFromInt(-10), entity.PaymentMethodCash, ""))
}

func TestValidatePayment_TarjetaRequiereReferencia(t *testing.T) {
	order := orderWithBalance(500, 0)

	err := billing.ValidatePayment(order, decimal.NewFromInt(100), entity.PaymentMethodCard, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.NoError(t, billing.ValidatePayment(order, decimal.NewFromInt(100), entity.PaymentMethodCard, "REF-123"))
}

func TestValidatePayment_MetodoDesconocido(t *testing.T) {
	order := orderWithBalance(500, 0)
	err := billing.ValidatePayment(order, decimal.NewFromInt(10), "cheque", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
