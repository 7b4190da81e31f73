package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/application/notify"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/billing"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// InvoiceUseCase facturación de órdenes de trabajo.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	expenses  repository.ExpenseRepository
	orders    repository.WorkOrderRepository
	users     repository.UserRepository
	sequences repository.SequenceRepository
	notifier  notify.Sink
	log       *logger.Logger
}

// NewInvoiceUseCase crea el caso de uso de facturas.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	expenses repository.ExpenseRepository,
	orders repository.WorkOrderRepository,
	users repository.UserRepository,
	sequences repository.SequenceRepository,
	notifier notify.Sink,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:  invoices,
		expenses:  expenses,
		orders:    orders,
		users:     users,
		sequences: sequences,
		notifier:  notifier,
		log:       log,
	}
}

// Create emite una factura sobre una orden. Sin líneas explícitas se factura
// el precio cotizado más los gastos registrados; el total siempre se recalcula
// de las líneas (nunca se acepta del caller).
func (uc *InvoiceUseCase) Create(ctx context.Context, p authz.Principal, companyID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	decision := authz.Decide(p, authz.OpCreateInvoice, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.WorkOrderID == "" {
		return nil, domain.NewValidation("work_order_id es obligatorio")
	}

	order, err := uc.orders.Get(companyID, req.WorkOrderID, nil)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	items := req.Items
	if len(items) == 0 {
		orderExpenses, err := uc.expenses.ListByWorkOrder(companyID, order.ID)
		if err != nil {
			return nil, err
		}
		items = billing.DefaultItems(order.QuotedPrice, orderExpenses)
	}

	seq, err := uc.sequences.Next(companyID, billing.SequenceInvoice)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dueDays := req.DueDays
	if dueDays <= 0 {
		dueDays = 30
	}
	dueDate := now.AddDate(0, 0, dueDays)

	invoice := &entity.Invoice{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		WorkOrderID:   order.ID,
		InvoiceNumber: billing.FormatNumber(billing.SequenceInvoice, seq),
		Items:         items,
		TaxAmount:     req.TaxAmount,
		TotalAmount:   billing.InvoiceTotal(items, req.TaxAmount),
		Status:        entity.InvoiceIssued,
		IssuedDate:    &now,
		DueDate:       &dueDate,
		CreatedAt:     now,
	}
	if err := uc.invoices.Create(invoice); err != nil {
		return nil, err
	}

	uc.notifyClient(companyID, order, invoice)

	uc.log.Info().
		Str("invoice_id", invoice.ID).
		Str("invoice_number", invoice.InvoiceNumber).
		Str("work_order_id", order.ID).
		Msg("factura emitida")

	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// notifyClient avisa al usuario CLIENT enlazado al Client de la orden, si
// existe. Best-effort.
func (uc *InvoiceUseCase) notifyClient(companyID string, order *entity.WorkOrder, invoice *entity.Invoice) {
	if order.RequestedByClientID == nil || *order.RequestedByClientID == "" {
		return
	}
	users, err := uc.users.List(companyID)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo resolver el destinatario de la factura")
		return
	}
	for _, u := range users {
		if u.Role == entity.RoleClient && u.ClientID != nil && *u.ClientID == *order.RequestedByClientID {
			uc.notifier.Notify(companyID, u.ID, entity.NotifInvoiceIssued, map[string]any{
				"invoice_id":     invoice.ID,
				"invoice_number": invoice.InvoiceNumber,
				"total_amount":   invoice.TotalAmount.StringFixed(2),
			})
		}
	}
}

// List lista facturas del tenant. Para rol CLIENT la visibilidad se resuelve
// en la misma query (join contra sus órdenes).
func (uc *InvoiceUseCase) List(ctx context.Context, p authz.Principal, companyID string) ([]dto.InvoiceResponse, error) {
	decision := authz.Decide(p, authz.OpListInvoices, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	invoices, err := uc.invoices.List(companyID, decision.WorkOrders)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// Get lee una factura. Un CLIENT solo accede a facturas de sus propias
// órdenes; el resto es indistinguible de inexistente.
func (uc *InvoiceUseCase) Get(ctx context.Context, p authz.Principal, companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.findVisible(p, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

func (uc *InvoiceUseCase) findVisible(p authz.Principal, companyID, id string) (*entity.Invoice, error) {
	decision := authz.Decide(p, authz.OpReadInvoice, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, domain.ErrNotFound
	}
	invoice, err := uc.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if p.Role == authz.RoleClient {
		order, err := uc.orders.GetByID(invoice.WorkOrderID)
		if err != nil {
			return nil, err
		}
		if order == nil || order.RequestedByClientID == nil ||
			p.ClientID == nil || *order.RequestedByClientID != *p.ClientID {
			return nil, domain.ErrNotFound
		}
	}
	return invoice, nil
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		WorkOrderID:   inv.WorkOrderID,
		InvoiceNumber: inv.InvoiceNumber,
		Items:         inv.Items,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status,
		IssuedDate:    inv.IssuedDate,
		DueDate:       inv.DueDate,
		CreatedAt:     inv.CreatedAt,
	}
}
