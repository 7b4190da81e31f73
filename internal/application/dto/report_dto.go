package dto

import "github.com/shopspring/decimal"

// OverviewReportResponse reporte general del tenant.
type OverviewReportResponse struct {
	TotalWorkOrders int             `json:"total_work_orders"`
	StatusBreakdown map[string]int  `json:"status_breakdown"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
	PendingInvoices int             `json:"pending_invoices"`
	ActiveClients   int             `json:"active_clients"`
	ActiveEmployees int             `json:"active_employees"`
}

// TrendsReportResponse órdenes creadas agrupadas por periodo.
type TrendsReportResponse struct {
	Trends  map[string]int `json:"trends"`
	GroupBy string         `json:"group_by"`
}

// CompanySummaryResponse fila del reporte global de SUPERADMIN.
type CompanySummaryResponse struct {
	CompanyID       string          `json:"company_id"`
	CompanyName     string          `json:"company_name"`
	Industry        string          `json:"industry"`
	TotalWorkOrders int             `json:"total_work_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}

// CompaniesSummaryResponse reporte global.
type CompaniesSummaryResponse struct {
	Companies []CompanySummaryResponse `json:"companies"`
}
