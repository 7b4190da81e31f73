package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, work_order_id, company_id, description, amount, currency,
			date, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.WorkOrderID, expense.CompanyID, expense.Description,
		expense.Amount, expense.Currency, expense.Date, expense.UploadedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListByWorkOrder lista los gastos de una orden del tenant.
func (r *ExpenseRepo) ListByWorkOrder(companyID, workOrderID string) ([]*entity.Expense, error) {
	query := `
		SELECT id, work_order_id, company_id, description, amount, currency, date, uploaded_by, created_at
		FROM expenses WHERE company_id = $1 AND work_order_id = $2 ORDER BY date ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.WorkOrderID, &e.CompanyID, &e.Description,
			&e.Amount, &e.Currency, &e.Date, &e.UploadedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
