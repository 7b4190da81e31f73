package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository. Las líneas de la factura
// se persisten como JSONB.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return fmt.Errorf("marshal invoice items: %w", err)
	}
	query := `
		INSERT INTO invoices (id, company_id, work_order_id, invoice_number, items,
			tax_amount, total_amount, status, issued_date, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.WorkOrderID, invoice.InvoiceNumber, items,
		invoice.TaxAmount, invoice.TotalAmount, invoice.Status,
		invoice.IssuedDate, invoice.DueDate, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, work_order_id, invoice_number, items, tax_amount, total_amount,
			status, issued_date, due_date, created_at
		FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List lista facturas del tenant. La visibilidad de cliente se resuelve con un
// join contra las órdenes en la misma query.
func (r *InvoiceRepo) List(companyID string, visibility *authz.WorkOrderFilter) ([]*entity.Invoice, error) {
	args := []any{companyID}
	query := `
		SELECT i.id, i.company_id, i.work_order_id, i.invoice_number, i.items, i.tax_amount,
			i.total_amount, i.status, i.issued_date, i.due_date, i.created_at
		FROM invoices i
		WHERE i.company_id = $1`

	if visibility != nil {
		switch {
		case visibility.None:
			query += " AND FALSE"
		case visibility.ClientID != "":
			args = append(args, visibility.ClientID)
			query += fmt.Sprintf(` AND EXISTS (
				SELECT 1 FROM work_orders w
				WHERE w.id = i.work_order_id AND w.requested_by_client_id = $%d)`, len(args))
		}
	}
	query += " ORDER BY i.created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var items []byte
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.WorkOrderID, &inv.InvoiceNumber, &items,
		&inv.TaxAmount, &inv.TotalAmount, &inv.Status, &inv.IssuedDate, &inv.DueDate, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshal invoice items: %w", err)
		}
	}
	return &inv, nil
}
