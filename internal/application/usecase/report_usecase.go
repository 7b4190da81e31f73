package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

// ReportUseCase reportes agregados por tenant y globales.
type ReportUseCase struct {
	reports repository.ReportRepository
}

// NewReportUseCase crea el caso de uso de reportes.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports}
}

// Overview reporte general del tenant. El margen se calcula sobre el ingreso
// devengado; con ingreso cero el margen es cero (no división por cero).
func (uc *ReportUseCase) Overview(ctx context.Context, p authz.Principal, companyID string) (*dto.OverviewReportResponse, error) {
	decision := authz.Decide(p, authz.OpViewReports, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	stats, err := uc.reports.Overview(companyID)
	if err != nil {
		return nil, err
	}

	margin := decimal.Zero
	if stats.TotalRevenue.IsPositive() {
		margin = stats.Profit.Div(stats.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return &dto.OverviewReportResponse{
		TotalWorkOrders: stats.TotalWorkOrders,
		StatusBreakdown: stats.StatusBreakdown,
		TotalRevenue:    stats.TotalRevenue,
		TotalExpenses:   stats.TotalExpenses,
		ProfitMargin:    margin,
		PendingInvoices: stats.PendingInvoices,
		ActiveClients:   stats.ActiveClients,
		ActiveEmployees: stats.ActiveEmployees,
	}, nil
}

// Trends órdenes creadas por periodo. groupBy admite day/week/month; week se
// agrupa como month.
func (uc *ReportUseCase) Trends(ctx context.Context, p authz.Principal, companyID, fromDate, toDate, groupBy string) (*dto.TrendsReportResponse, error) {
	decision := authz.Decide(p, authz.OpViewReports, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	switch groupBy {
	case "", "week", "month":
		groupBy = "month"
	case "day":
	default:
		return nil, domain.NewValidation("group_by debe ser day, week o month")
	}

	trends, err := uc.reports.WorkOrderTrends(companyID, fromDate, toDate, groupBy)
	if err != nil {
		return nil, err
	}
	return &dto.TrendsReportResponse{Trends: trends, GroupBy: groupBy}, nil
}

// CompaniesSummary reporte global por empresa (solo SUPERADMIN).
func (uc *ReportUseCase) CompaniesSummary(ctx context.Context, p authz.Principal) (*dto.CompaniesSummaryResponse, error) {
	decision := authz.Decide(p, authz.OpViewGlobalReports, authz.Resource{})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	summaries, err := uc.reports.CompaniesSummary()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanySummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.CompanySummaryResponse{
			CompanyID:       s.CompanyID,
			CompanyName:     s.CompanyName,
			Industry:        s.Industry,
			TotalWorkOrders: s.TotalWorkOrders,
			TotalRevenue:    s.TotalRevenue,
		})
	}
	return &dto.CompaniesSummaryResponse{Companies: out}, nil
}
