package repository

import (
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// List aplica la visibilidad de cliente (join contra las órdenes del
	// Client) dentro de la misma query.
	List(companyID string, visibility *authz.WorkOrderFilter) ([]*entity.Invoice, error)
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	ListByWorkOrder(companyID, workOrderID string) ([]*entity.Expense, error)
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByWorkOrder(companyID, workOrderID string) ([]*entity.Payment, error)
}

// SequenceRepository entrega consecutivos por tenant con un incremento
// atómico (corrige la carrera del conteo-e-inserción original).
type SequenceRepository interface {
	Next(companyID, kind string) (int64, error)
}
