package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de reportes resueltas en la base (GROUP BY / SUM),
// nunca en memoria.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Overview agregados del tenant. El ingreso es devengado: facturas ISSUED y
// PAID.
func (r *ReportRepo) Overview(companyID string) (*repository.OverviewStats, error) {
	ctx := context.Background()
	stats := &repository.OverviewStats{
		StatusBreakdown: map[string]int{},
		TotalRevenue:    decimal.Zero,
		TotalExpenses:   decimal.Zero,
	}

	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*) FROM work_orders WHERE company_id = $1 GROUP BY status`, companyID)
	if err != nil {
		return nil, fmt.Errorf("work order breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		stats.StatusBreakdown[status] = count
		stats.TotalWorkOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0),
			COUNT(*) FILTER (WHERE status = 'ISSUED')
		FROM invoices WHERE company_id = $1 AND status IN ('ISSUED', 'PAID')`, companyID).
		Scan(&stats.TotalRevenue, &stats.PendingInvoices)
	if err != nil {
		return nil, fmt.Errorf("invoice totals: %w", err)
	}

	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE company_id = $1`, companyID).
		Scan(&stats.TotalExpenses)
	if err != nil {
		return nil, fmt.Errorf("expense totals: %w", err)
	}

	err = r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM clients WHERE company_id = $1),
			(SELECT COUNT(*) FROM employees WHERE company_id = $1)`, companyID).
		Scan(&stats.ActiveClients, &stats.ActiveEmployees)
	if err != nil {
		return nil, fmt.Errorf("crm counts: %w", err)
	}

	stats.Profit = stats.TotalRevenue.Sub(stats.TotalExpenses)
	return stats, nil
}

// WorkOrderTrends cuenta órdenes creadas por periodo (YYYY-MM-DD o YYYY-MM).
func (r *ReportRepo) WorkOrderTrends(companyID, fromDate, toDate, groupBy string) (map[string]int, error) {
	format := "YYYY-MM"
	if groupBy == "day" {
		format = "YYYY-MM-DD"
	}

	args := []any{companyID, format}
	query := `
		SELECT to_char(created_at, $2) AS period, COUNT(*)
		FROM work_orders WHERE company_id = $1`
	if fromDate != "" {
		args = append(args, fromDate)
		query += fmt.Sprintf(" AND created_at >= $%d::date", len(args))
	}
	if toDate != "" {
		args = append(args, toDate)
		query += fmt.Sprintf(" AND created_at < $%d::date + INTERVAL '1 day'", len(args))
	}
	query += " GROUP BY period ORDER BY period"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("work order trends: %w", err)
	}
	defer rows.Close()

	trends := map[string]int{}
	for rows.Next() {
		var period string
		var count int
		if err := rows.Scan(&period, &count); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		trends[period] = count
	}
	return trends, rows.Err()
}

// CompaniesSummary agregados por empresa para el reporte global.
func (r *ReportRepo) CompaniesSummary() ([]*repository.CompanySummary, error) {
	query := `
		SELECT c.id, c.name, c.industry,
			(SELECT COUNT(*) FROM work_orders w WHERE w.company_id = c.id),
			(SELECT COALESCE(SUM(i.total_amount), 0) FROM invoices i
				WHERE i.company_id = c.id AND i.status IN ('ISSUED', 'PAID'))
		FROM companies c ORDER BY c.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("companies summary: %w", err)
	}
	defer rows.Close()

	var list []*repository.CompanySummary
	for rows.Next() {
		var s repository.CompanySummary
		if err := rows.Scan(&s.CompanyID, &s.CompanyName, &s.Industry,
			&s.TotalWorkOrders, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan company summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
