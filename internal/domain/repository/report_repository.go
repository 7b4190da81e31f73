package repository

import "github.com/shopspring/decimal"

// OverviewStats agregados del reporte general de un tenant.
// Revenue es devengado: facturas ISSUED + PAID (no solo cobradas).
type OverviewStats struct {
	TotalWorkOrders int
	StatusBreakdown map[string]int
	TotalRevenue    decimal.Decimal
	TotalExpenses   decimal.Decimal
	Profit          decimal.Decimal
	PendingInvoices int
	ActiveClients   int
	ActiveEmployees int
}

// CompanySummary agregados por empresa para el reporte global de SUPERADMIN.
type CompanySummary struct {
	CompanyID       string
	CompanyName     string
	Industry        string
	TotalWorkOrders int
	TotalRevenue    decimal.Decimal
}

// ReportRepository define el puerto de agregación para reportes. Las
// agregaciones se resuelven en la base (GROUP BY / SUM), no en memoria.
type ReportRepository interface {
	Overview(companyID string) (*OverviewStats, error)
	// WorkOrderTrends cuenta órdenes creadas por periodo; groupBy es
	// "day" o "month" (semana se simplifica a mes, como el flujo original).
	WorkOrderTrends(companyID, fromDate, toDate, groupBy string) (map[string]int, error)
	CompaniesSummary() ([]*CompanySummary, error)
}
