package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/billing"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// PaymentUseCase abonos a órdenes de trabajo. La inserción del pago y la
// actualización del saldo ocurren en una sola transacción con guarda atómica:
// dos abonos concurrentes jamás exceden el precio cotizado.
type PaymentUseCase struct {
	orders   repository.WorkOrderRepository
	payments repository.PaymentRepository
	tx       TxRunner
	log      *logger.Logger
}

// NewPaymentUseCase crea el caso de uso de pagos.
func NewPaymentUseCase(orders repository.WorkOrderRepository, payments repository.PaymentRepository, tx TxRunner, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, payments: payments, tx: tx, log: log}
}

// Process registra un abono. Valida contra el saldo leído y vuelve a validar
// en la base con la guarda paid_amount + amount <= quoted_price; si la guarda
// rechaza (carrera con otro abono), la transacción se revierte con 409.
func (uc *PaymentUseCase) Process(ctx context.Context, p authz.Principal, companyID string, req dto.ProcessPaymentRequest) (*dto.PaymentResponse, error) {
	decision := authz.Decide(p, authz.OpProcessPayment, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.WorkOrderID == "" {
		return nil, domain.NewValidation("work_order_id es obligatorio")
	}

	order, err := uc.orders.Get(companyID, req.WorkOrderID, nil)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := billing.ValidatePayment(order, req.Amount, req.Method, req.ReferenceNumber); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ID:              uuid.NewString(),
		WorkOrderID:     order.ID,
		CompanyID:       companyID,
		Amount:          req.Amount,
		Method:          req.Method,
		ReferenceNumber: req.ReferenceNumber,
		ProcessedBy:     p.UserID,
		CreatedAt:       time.Now().UTC(),
	}

	var newPaid decimal.Decimal
	err = uc.tx.WithinTx(func(repos TxRepos) error {
		if err := repos.Payments.Create(payment); err != nil {
			return err
		}
		paid, ok, err := repos.Orders.AddPayment(order.ID, req.Amount)
		if err != nil {
			return err
		}
		if !ok {
			// La guarda rechazó: otro abono concurrente agotó el saldo.
			return domain.ErrConflict
		}
		newPaid = paid
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("payment_id", payment.ID).
		Str("work_order_id", order.ID).
		Str("amount", req.Amount.StringFixed(2)).
		Msg("abono registrado")

	return &dto.PaymentResponse{
		ID:              payment.ID,
		WorkOrderID:     payment.WorkOrderID,
		Amount:          payment.Amount,
		Method:          payment.Method,
		ReferenceNumber: payment.ReferenceNumber,
		PaidAmount:      newPaid,
		CreatedAt:       payment.CreatedAt,
	}, nil
}

// ListByWorkOrder lista los abonos de una orden del tenant.
func (uc *PaymentUseCase) ListByWorkOrder(ctx context.Context, p authz.Principal, companyID, workOrderID string) ([]dto.PaymentResponse, error) {
	decision := authz.Decide(p, authz.OpReadWorkOrder, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orders.Get(companyID, workOrderID, decision.WorkOrders)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	payments, err := uc.payments.ListByWorkOrder(companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, pay := range payments {
		out = append(out, dto.PaymentResponse{
			ID:              pay.ID,
			WorkOrderID:     pay.WorkOrderID,
			Amount:          pay.Amount,
			Method:          pay.Method,
			ReferenceNumber: pay.ReferenceNumber,
			PaidAmount:      order.PaidAmount,
			CreatedAt:       pay.CreatedAt,
		})
	}
	return out, nil
}
