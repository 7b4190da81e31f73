package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// ExpenseUseCase gastos internos sobre órdenes de trabajo.
type ExpenseUseCase struct {
	expenses repository.ExpenseRepository
	orders   repository.WorkOrderRepository
	log      *logger.Logger
}

// NewExpenseUseCase crea el caso de uso de gastos.
func NewExpenseUseCase(expenses repository.ExpenseRepository, orders repository.WorkOrderRepository, log *logger.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses, orders: orders, log: log}
}

// Create registra un gasto sobre una orden del tenant.
func (uc *ExpenseUseCase) Create(ctx context.Context, p authz.Principal, companyID, workOrderID string, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	decision := authz.Decide(p, authz.OpCreateExpense, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.Description == "" {
		return nil, domain.NewValidation("description es obligatorio")
	}
	if !req.Amount.IsPositive() {
		return nil, domain.NewValidation("amount debe ser mayor que cero")
	}

	order, err := uc.orders.Get(companyID, workOrderID, nil)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	expense := &entity.Expense{
		ID:          uuid.NewString(),
		WorkOrderID: workOrderID,
		CompanyID:   companyID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		Date:        date,
		UploadedBy:  p.UserID,
		CreatedAt:   now,
	}
	if err := uc.expenses.Create(expense); err != nil {
		return nil, err
	}
	uc.log.Info().Str("expense_id", expense.ID).Str("work_order_id", workOrderID).Msg("gasto registrado")
	resp := toExpenseResponse(expense)
	return &resp, nil
}

// List lista los gastos de una orden del tenant.
func (uc *ExpenseUseCase) List(ctx context.Context, p authz.Principal, companyID, workOrderID string) ([]dto.ExpenseResponse, error) {
	decision := authz.Decide(p, authz.OpListExpenses, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	expenses, err := uc.expenses.ListByWorkOrder(companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		WorkOrderID: e.WorkOrderID,
		CompanyID:   e.CompanyID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Date:        e.Date,
		UploadedBy:  e.UploadedBy,
		CreatedAt:   e.CreatedAt,
	}
}
