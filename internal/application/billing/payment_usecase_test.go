package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/ServiOrden-api/internal/application/billing"
	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeWorkOrderRepo struct {
	order *entity.WorkOrder
	// staleRead simula una lectura desactualizada: Get devuelve la orden con
	// este saldo en vez del real, como pasaría con dos abonos concurrentes.
	staleRead *decimal.Decimal
}

func (f *fakeWorkOrderRepo) Create(order *entity.WorkOrder) error { return nil }

func (f *fakeWorkOrderRepo) Get(companyID, id string, _ *authz.WorkOrderFilter) (*entity.WorkOrder, error) {
	if f.order == nil || f.order.CompanyID != companyID || f.order.ID != id {
		return nil, nil
	}
	copia := *f.order
	if f.staleRead != nil {
		copia.PaidAmount = *f.staleRead
	}
	return &copia, nil
}

func (f *fakeWorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	if f.order == nil || f.order.ID != id {
		return nil, nil
	}
	copia := *f.order
	return &copia, nil
}

func (f *fakeWorkOrderRepo) List(companyID string, q repository.WorkOrderQuery) ([]*entity.WorkOrder, error) {
	return nil, nil
}

func (f *fakeWorkOrderRepo) Update(order *entity.WorkOrder) error { return nil }
func (f *fakeWorkOrderRepo) UpdateStatus(id, status string) error { return nil }

// AddPayment replica la guarda atómica: false si el abono excede el cotizado,
// y el saldo resultante sale del estado real (como el RETURNING de la base).
func (f *fakeWorkOrderRepo) AddPayment(id string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	if f.order.PaidAmount.Add(amount).GreaterThan(f.order.QuotedPrice) {
		return decimal.Zero, false, nil
	}
	f.order.PaidAmount = f.order.PaidAmount.Add(amount)
	return f.order.PaidAmount, true, nil
}

type fakePaymentRepo struct {
	created []*entity.Payment
}

func (f *fakePaymentRepo) Create(p *entity.Payment) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakePaymentRepo) ListByWorkOrder(companyID, workOrderID string) ([]*entity.Payment, error) {
	return f.created, nil
}

// fakeTxRunner ejecuta el callback contra los fakes y revierte las inserciones
// de pagos si el callback falla, imitando el rollback de la transacción real.
type fakeTxRunner struct {
	orders   *fakeWorkOrderRepo
	payments *fakePaymentRepo
}

func (f *fakeTxRunner) WithinTx(fn func(appbilling.TxRepos) error) error {
	before := len(f.payments.created)
	err := fn(appbilling.TxRepos{Orders: f.orders, Payments: f.payments})
	if err != nil {
		f.payments.created = f.payments.created[:before]
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID   = "empresa-1"
	workOrderID = "orden-1"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func adminPrincipal() authz.Principal {
	return authz.Principal{UserID: "admin-1", CompanyID: companyID, Role: authz.RoleAdmin}
}

// buildPaymentUC arma el caso de uso con una orden cotizada en 500 y el saldo
// pagado indicado.
func buildPaymentUC(paid string) (*appbilling.PaymentUseCase, *fakeWorkOrderRepo, *fakePaymentRepo) {
	orders := &fakeWorkOrderRepo{order: &entity.WorkOrder{
		ID:          workOrderID,
		CompanyID:   companyID,
		OrderNumber: "WO-000001",
		Status:      entity.WorkOrderApproved,
		QuotedPrice: dec("500"),
		PaidAmount:  dec(paid),
	}}
	payments := &fakePaymentRepo{}
	tx := &fakeTxRunner{orders: orders, payments: payments}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return appbilling.NewPaymentUseCase(orders, payments, tx, log), orders, payments
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Process
// ──────────────────────────────────────────────────────────────────────────────

// Abono dentro del saldo pendiente: se registra y el saldo sube.
func TestProcess_AbonoValido_ActualizaSaldo(t *testing.T) {
	uc, orders, payments := buildPaymentUC("400")

	out, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("50"),
		Method:      entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.True(t, out.PaidAmount.Equal(dec("450")), "el saldo debe quedar en 450")
	assert.True(t, orders.order.PaidAmount.Equal(dec("450")))
	require.Len(t, payments.created, 1)
	assert.Equal(t, "admin-1", payments.created[0].ProcessedBy)
}

// Abono exacto al saldo pendiente: el límite es inclusivo.
func TestProcess_AbonoIgualAlSaldo_Acepta(t *testing.T) {
	uc, orders, _ := buildPaymentUC("450")

	_, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("50"),
		Method:      entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.True(t, orders.order.PaidAmount.Equal(dec("500")), "la orden queda saldada")
}

// Abono que excede el saldo pendiente (450 pagados de 500, abono de 60):
// se rechaza en validación y no se inserta nada.
func TestProcess_AbonoExcedeSaldo_Rechaza(t *testing.T) {
	uc, orders, payments := buildPaymentUC("450")

	_, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("60"),
		Method:      entity.PaymentMethodCash,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, orders.order.PaidAmount.Equal(dec("450")), "el saldo no debe cambiar")
	assert.Empty(t, payments.created, "no debe insertarse ningún pago")
}

func TestProcess_MontoNoPositivo_Rechaza(t *testing.T) {
	uc, _, _ := buildPaymentUC("0")

	_, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("0"),
		Method:      entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcess_TarjetaSinReferencia_Rechaza(t *testing.T) {
	uc, _, _ := buildPaymentUC("0")

	_, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("100"),
		Method:      entity.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"card exige número de referencia")
}

func TestProcess_OrdenInexistente_Retorna404(t *testing.T) {
	uc, _, _ := buildPaymentUC("0")

	_, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: "no-existe",
		Amount:      dec("100"),
		Method:      entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Rol CLIENT no procesa pagos.
func TestProcess_ClientNoPuedeAbonar(t *testing.T) {
	uc, _, payments := buildPaymentUC("0")
	client := authz.Principal{UserID: "cli-1", CompanyID: companyID, Role: authz.RoleClient}

	_, err := uc.Process(context.Background(), client, companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("100"),
		Method:      entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, payments.created)
}

// Carrera donde la guarda sí pasa: la lectura previa iba atrasada (400) pero
// otro abono ya había subido el saldo real a 420. El saldo de la respuesta
// debe salir del RETURNING de la base (470), no de la lectura previa (450).
func TestProcess_SaldoRespondidoSaleDeLaBase(t *testing.T) {
	uc, orders, _ := buildPaymentUC("420")
	stale := dec("400")
	orders.staleRead = &stale

	out, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("50"),
		Method:      entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.True(t, out.PaidAmount.Equal(dec("470")),
		"el saldo respondido debe ser el de la base, no la lectura previa: %s", out.PaidAmount)
}

// Carrera entre dos abonos: la validación pasa sobre la lectura desactualizada
// pero la guarda de la base rechaza, la transacción se revierte y sale 409.
func TestProcess_CarreraConOtroAbono_RevierteCon409(t *testing.T) {
	uc, orders, payments := buildPaymentUC("480")
	stale := dec("400")
	orders.staleRead = &stale // el caso de uso cree que van 400 pagados

	_, err := uc.Process(context.Background(), adminPrincipal(), companyID, dto.ProcessPaymentRequest{
		WorkOrderID: workOrderID,
		Amount:      dec("60"),
		Method:      entity.PaymentMethodCash,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	assert.True(t, orders.order.PaidAmount.Equal(dec("480")), "la guarda no debe aplicar el abono")
	assert.Empty(t, payments.created, "el rollback debe descartar el pago insertado")
}
