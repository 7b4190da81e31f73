package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un abono.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, work_order_id, company_id, amount, method, reference_number,
			processed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.WorkOrderID, payment.CompanyID, payment.Amount, payment.Method,
		payment.ReferenceNumber, payment.ProcessedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByWorkOrder lista los abonos de una orden del tenant.
func (r *PaymentRepo) ListByWorkOrder(companyID, workOrderID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, work_order_id, company_id, amount, method, reference_number, processed_by, created_at
		FROM payments WHERE company_id = $1 AND work_order_id = $2 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.WorkOrderID, &p.CompanyID, &p.Amount, &p.Method,
			&p.ReferenceNumber, &p.ProcessedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
