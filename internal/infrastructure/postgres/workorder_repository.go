package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, company_id, order_number, title, description, created_by,
		requested_by_client_id, vehicle_id, assigned_technicians, status, priority, asset_code,
		start_date, end_date, scheduled_date, estimated_cost, quoted_price, paid_amount,
		created_at, updated_at`

// WorkOrderRepo implementación de WorkOrderRepository (usable con pool o tx).
// assigned_technicians se persiste como TEXT[].
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// visibilityPredicate traduce el filtro de visibilidad a SQL. El predicado se
// suma al WHERE de la misma query: una orden invisible jamás sale de la base.
func visibilityPredicate(v *authz.WorkOrderFilter, args []any) (string, []any) {
	if v == nil {
		return "", args
	}
	switch {
	case v.None:
		return " AND FALSE", args
	case v.TechnicianID != "":
		args = append(args, v.TechnicianID)
		return fmt.Sprintf(" AND ($%d = ANY(assigned_technicians) OR status = 'APPROVED')", len(args)), args
	case v.ClientID != "":
		args = append(args, v.ClientID)
		return fmt.Sprintf(" AND requested_by_client_id = $%d", len(args)), args
	}
	return "", args
}

// Create persiste una nueva orden.
func (r *WorkOrderRepo) Create(order *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (id, company_id, order_number, title, description, created_by,
			requested_by_client_id, vehicle_id, assigned_technicians, status, priority, asset_code,
			start_date, end_date, scheduled_date, estimated_cost, quoted_price, paid_amount,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.OrderNumber, order.Title, order.Description, order.CreatedBy,
		order.RequestedByClientID, order.VehicleID, order.AssignedTechnicians, order.Status,
		order.Priority, order.AssetCode, order.StartDate, order.EndDate, order.ScheduledDate,
		order.EstimatedCost, order.QuotedPrice, order.PaidAmount, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// Get obtiene una orden del tenant aplicando la visibilidad en el WHERE.
func (r *WorkOrderRepo) Get(companyID, id string, visibility *authz.WorkOrderFilter) (*entity.WorkOrder, error) {
	args := []any{companyID, id}
	predicate, args := visibilityPredicate(visibility, args)
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE company_id = $1 AND id = $2` + predicate

	o, err := scanWorkOrder(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return o, nil
}

// GetByID obtiene una orden sin scoping (uso interno: facturas, PDF).
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	o, err := scanWorkOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order by id: %w", err)
	}
	return o, nil
}

// List lista órdenes del tenant con filtros y visibilidad en la misma query.
func (r *WorkOrderRepo) List(companyID string, q repository.WorkOrderQuery) ([]*entity.WorkOrder, error) {
	args := []any{companyID}
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE company_id = $1`

	if q.Status != "" {
		args = append(args, q.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if q.AssignedTo != "" {
		args = append(args, q.AssignedTo)
		query += fmt.Sprintf(" AND $%d = ANY(assigned_technicians)", len(args))
	}
	var predicate string
	predicate, args = visibilityPredicate(q.Visibility, args)
	query += predicate

	args = append(args, q.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, q.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkOrder
	for rows.Next() {
		o, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update actualiza una orden completa (el caso de uso arma el estado final).
func (r *WorkOrderRepo) Update(order *entity.WorkOrder) error {
	query := `
		UPDATE work_orders SET title = $2, description = $3, requested_by_client_id = $4,
			vehicle_id = $5, assigned_technicians = $6, status = $7, priority = $8, asset_code = $9,
			start_date = $10, end_date = $11, scheduled_date = $12, estimated_cost = $13,
			quoted_price = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Title, order.Description, order.RequestedByClientID, order.VehicleID,
		order.AssignedTechnicians, order.Status, order.Priority, order.AssetCode,
		order.StartDate, order.EndDate, order.ScheduledDate, order.EstimatedCost,
		order.QuotedPrice, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *WorkOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE work_orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	return nil
}

// AddPayment suma al saldo pagado con la guarda en el propio UPDATE:
// si paid_amount + amount excede quoted_price no se toca ninguna fila y se
// devuelve false (el caller revierte la transacción). El saldo devuelto sale
// del RETURNING, nunca de la lectura previa del caller.
func (r *WorkOrderRepo) AddPayment(id string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	var paid decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		UPDATE work_orders SET paid_amount = paid_amount + $2, updated_at = NOW()
		WHERE id = $1 AND paid_amount + $2 <= quoted_price
		RETURNING paid_amount`, id, amount).Scan(&paid)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("add payment: %w", err)
	}
	return paid, true, nil
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var o entity.WorkOrder
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.OrderNumber, &o.Title, &o.Description, &o.CreatedBy,
		&o.RequestedByClientID, &o.VehicleID, &o.AssignedTechnicians, &o.Status, &o.Priority,
		&o.AssetCode, &o.StartDate, &o.EndDate, &o.ScheduledDate, &o.EstimatedCost,
		&o.QuotedPrice, &o.PaidAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.AssignedTechnicians == nil {
		o.AssignedTechnicians = []string{}
	}
	return &o, nil
}
