package workorder_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/application/workorder"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders []*entity.WorkOrder
	// lastQuery guarda la última query recibida para inspeccionar la
	// visibilidad que el caso de uso le pasó al repositorio.
	lastQuery *repository.WorkOrderQuery
}

func (f *fakeOrderRepo) Create(order *entity.WorkOrder) error {
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) Get(companyID, id string, _ *authz.WorkOrderFilter) (*entity.WorkOrder, error) {
	for _, o := range f.orders {
		if o.CompanyID == companyID && o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) List(companyID string, q repository.WorkOrderQuery) ([]*entity.WorkOrder, error) {
	f.lastQuery = &q
	return f.orders, nil
}

func (f *fakeOrderRepo) Update(order *entity.WorkOrder) error { return nil }

func (f *fakeOrderRepo) UpdateStatus(id, status string) error {
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
		}
	}
	return nil
}

func (f *fakeOrderRepo) AddPayment(id string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	return amount, true, nil
}

type fakeCompanyRepo struct {
	company *entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if f.company != nil && f.company.ID == id {
		return f.company, nil
	}
	return nil, nil
}
func (f *fakeCompanyRepo) List() ([]*entity.Company, error) { return nil, nil }

type fakeUserRepo struct{}

func (f *fakeUserRepo) Create(u *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(id string) (*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) FindByEmail(e string) (*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) List(companyID string) ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) UpdateLastLogin(id string) error { return nil }

func (f *fakeUserRepo) Delete(id string) error { return nil }

func (f *fakeUserRepo) ListByIDs(ids []string) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, &entity.User{ID: id, DisplayName: "Técnico " + id})
	}
	return out, nil
}

type fakeSequenceRepo struct {
	next int64
}

func (f *fakeSequenceRepo) Next(companyID, kind string) (int64, error) {
	f.next++
	return f.next, nil
}

type notified struct {
	userID    string
	notifType string
}

type fakeSink struct {
	sent []notified
}

func (f *fakeSink) Notify(companyID, userID, notifType string, payload map[string]any) {
	f.sent = append(f.sent, notified{userID: userID, notifType: notifType})
}

func (f *fakeSink) NotifyAll(companyID string, userIDs []string, notifType string, payload map[string]any) {
	for _, id := range userIDs {
		f.Notify(companyID, id, notifType, payload)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const companyID = "empresa-1"

func buildUC(industry string) (*workorder.UseCase, *fakeOrderRepo, *fakeSink) {
	orders := &fakeOrderRepo{}
	companies := &fakeCompanyRepo{company: &entity.Company{ID: companyID, Name: "ACME", Industry: industry}}
	sink := &fakeSink{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := workorder.NewUseCase(orders, companies, &fakeUserRepo{}, &fakeSequenceRepo{}, sink, log)
	return uc, orders, sink
}

func admin() authz.Principal {
	return authz.Principal{UserID: "admin-1", CompanyID: companyID, Role: authz.RoleAdmin}
}

func employee() authz.Principal {
	return authz.Principal{UserID: "emp-1", CompanyID: companyID, Role: authz.RoleEmployee}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeraSecuencialPorTenant(t *testing.T) {
	uc, _, _ := buildUC(entity.IndustryAutomotive)
	ctx := context.Background()

	first, err := uc.Create(ctx, admin(), companyID, dto.CreateWorkOrderRequest{Title: "Cambio de aceite"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, admin(), companyID, dto.CreateWorkOrderRequest{Title: "Alineación"})
	require.NoError(t, err)

	assert.Equal(t, "WO-000001", first.OrderNumber)
	assert.Equal(t, "WO-000002", second.OrderNumber)
	assert.Equal(t, entity.WorkOrderPending, first.Status, "toda orden nace PENDING")
	assert.Equal(t, entity.PriorityMedium, first.Priority, "la prioridad por defecto es MEDIUM")
}

func TestCreate_NotificaTecnicosAsignados(t *testing.T) {
	uc, _, sink := buildUC(entity.IndustryAutomotive)

	_, err := uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{
		Title:               "Revisión de frenos",
		AssignedTechnicians: []string{"tec-1", "tec-2"},
	})
	require.NoError(t, err)

	require.Len(t, sink.sent, 2)
	assert.Equal(t, entity.NotifWorkOrderAssigned, sink.sent[0].notifType)
	assert.Equal(t, "tec-1", sink.sent[0].userID)
	assert.Equal(t, "tec-2", sink.sent[1].userID)
}

// En technical_solutions toda orden exige asset_code (validación, no 403).
func TestCreate_TechnicalSolutions_ExigeAssetCode(t *testing.T) {
	uc, _, _ := buildUC(entity.IndustryTechnicalSolutions)

	_, err := uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{Title: "Instalación"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{
		Title:     "Instalación",
		AssetCode: "AC-042",
	})
	require.NoError(t, err)
	assert.Equal(t, "AC-042", out.AssetCode)
}

// En furniture solo los admins crean órdenes (autorización, no validación).
func TestCreate_Furniture_EmpleadoRecibe403(t *testing.T) {
	uc, orders, _ := buildUC(entity.IndustryFurniture)

	_, err := uc.Create(context.Background(), employee(), companyID, dto.CreateWorkOrderRequest{Title: "Mesa a medida"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, orders.orders)

	_, err = uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{Title: "Mesa a medida"})
	assert.NoError(t, err)
}

func TestCreate_EmpresaInexistente_Retorna404(t *testing.T) {
	uc, _, _ := buildUC(entity.IndustryAutomotive)

	_, err := uc.Create(context.Background(), admin(), "empresa-fantasma", dto.CreateWorkOrderRequest{Title: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_OtroTenant_Retorna403(t *testing.T) {
	uc, orders, _ := buildUC(entity.IndustryAutomotive)
	intruso := authz.Principal{UserID: "admin-2", CompanyID: "empresa-2", Role: authz.RoleAdmin}

	// La empresa existe pero el principal pertenece a otro tenant.
	_, err := uc.Create(context.Background(), intruso, companyID, dto.CreateWorkOrderRequest{Title: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, orders.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests List — la visibilidad viaja al repositorio, nunca se post-filtra
// ──────────────────────────────────────────────────────────────────────────────

func TestList_AdminSinFiltroDeFila(t *testing.T) {
	uc, orders, _ := buildUC(entity.IndustryAutomotive)

	_, err := uc.List(context.Background(), admin(), companyID, dto.ListWorkOrdersQuery{})
	require.NoError(t, err)

	require.NotNil(t, orders.lastQuery)
	assert.Nil(t, orders.lastQuery.Visibility, "admin lista sin predicado de fila")
}

func TestList_EmpleadoLlevaSuFiltroAlRepositorio(t *testing.T) {
	uc, orders, _ := buildUC(entity.IndustryAutomotive)

	_, err := uc.List(context.Background(), employee(), companyID, dto.ListWorkOrdersQuery{})
	require.NoError(t, err)

	require.NotNil(t, orders.lastQuery)
	require.NotNil(t, orders.lastQuery.Visibility)
	assert.Equal(t, "emp-1", orders.lastQuery.Visibility.TechnicianID)
}

// Un empleado que filtra assigned_to hacia otro técnico recibe conjunto vacío,
// no error: no puede usar el filtro para sondear el backlog ajeno.
func TestList_EmpleadoFiltraOtroTecnico_ConjuntoVacio(t *testing.T) {
	uc, orders, _ := buildUC(entity.IndustryAutomotive)

	_, err := uc.List(context.Background(), employee(), companyID, dto.ListWorkOrdersQuery{AssignedTo: "tec-9"})
	require.NoError(t, err)

	require.NotNil(t, orders.lastQuery)
	require.NotNil(t, orders.lastQuery.Visibility)
	assert.True(t, orders.lastQuery.Visibility.None)
}

func TestList_StatusInvalido_Rechaza(t *testing.T) {
	uc, _, _ := buildUC(entity.IndustryAutomotive)

	_, err := uc.List(context.Background(), admin(), companyID, dto.ListWorkOrdersQuery{Status: "EN_PAUSA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

// Un cambio de estado notifica a los técnicos asignados y al creador de la
// orden; el creador no se duplica si además está asignado.
func TestUpdate_CambioDeEstado_NotificaCreadorYTecnicos(t *testing.T) {
	uc, _, sink := buildUC(entity.IndustryAutomotive)
	out, err := uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{
		Title:               "Pintura",
		AssignedTechnicians: []string{"tec-1"},
	})
	require.NoError(t, err)
	sink.sent = nil // descartar la notificación de asignación

	status := entity.WorkOrderInProgress
	_, err = uc.Update(context.Background(), admin(), companyID, out.ID, dto.UpdateWorkOrderRequest{Status: &status})
	require.NoError(t, err)

	require.Len(t, sink.sent, 2)
	assert.Equal(t, entity.NotifWorkOrderStatusChanged, sink.sent[0].notifType)
	assert.Equal(t, "tec-1", sink.sent[0].userID)
	assert.Equal(t, "admin-1", sink.sent[1].userID, "el creador recibe el cambio de estado")
}

func TestUpdate_CreadorAsignado_NoSeDuplica(t *testing.T) {
	uc, _, sink := buildUC(entity.IndustryAutomotive)
	out, err := uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{
		Title:               "Pintura",
		AssignedTechnicians: []string{"admin-1"},
	})
	require.NoError(t, err)
	sink.sent = nil

	status := entity.WorkOrderCompleted
	_, err = uc.Update(context.Background(), admin(), companyID, out.ID, dto.UpdateWorkOrderRequest{Status: &status})
	require.NoError(t, err)

	require.Len(t, sink.sent, 1, "creador asignado recibe una sola notificación")
	assert.Equal(t, "admin-1", sink.sent[0].userID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_SoloAdmins(t *testing.T) {
	uc, _, _ := buildUC(entity.IndustryAutomotive)
	out, err := uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{Title: "X"})
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), employee(), companyID, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	approved, err := uc.Approve(context.Background(), admin(), companyID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderApproved, approved.Status)
}

func TestApprove_OrdenCancelada_Retorna409(t *testing.T) {
	uc, orders, _ := buildUC(entity.IndustryAutomotive)
	out, err := uc.Create(context.Background(), admin(), companyID, dto.CreateWorkOrderRequest{Title: "X"})
	require.NoError(t, err)
	require.NoError(t, orders.UpdateStatus(out.ID, entity.WorkOrderCancelled))

	_, err = uc.Approve(context.Background(), admin(), companyID, out.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
