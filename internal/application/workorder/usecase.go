// Package workorder implementa los casos de uso de órdenes de trabajo:
// creación con numeración secuencial por tenant, listado con visibilidad por
// fila resuelta en la query, actualización parcial y aprobación.
package workorder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/application/notify"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/billing"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// UseCase casos de uso de órdenes de trabajo.
type UseCase struct {
	orders    repository.WorkOrderRepository
	companies repository.CompanyRepository
	users     repository.UserRepository
	sequences repository.SequenceRepository
	notifier  notify.Sink
	log       *logger.Logger
}

// NewUseCase crea el caso de uso de órdenes.
func NewUseCase(
	orders repository.WorkOrderRepository,
	companies repository.CompanyRepository,
	users repository.UserRepository,
	sequences repository.SequenceRepository,
	notifier notify.Sink,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		orders:    orders,
		companies: companies,
		users:     users,
		sequences: sequences,
		notifier:  notifier,
		log:       log,
	}
}

func validStatus(s string) bool {
	switch s {
	case entity.WorkOrderDraft, entity.WorkOrderPending, entity.WorkOrderApproved,
		entity.WorkOrderInProgress, entity.WorkOrderCompleted, entity.WorkOrderCancelled:
		return true
	}
	return false
}

func validPriority(s string) bool {
	switch s {
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh, entity.PriorityUrgent:
		return true
	}
	return false
}

// Create registra una orden de trabajo. La industria del tenant decide la
// variante: en furniture solo los admins crean (autorización); en
// technical_solutions el asset_code es obligatorio (validación).
func (uc *UseCase) Create(ctx context.Context, p authz.Principal, companyID string, req dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	decision := authz.Decide(p, authz.OpCreateWorkOrder, authz.Resource{
		CompanyID: companyID,
		Industry:  company.Industry,
	})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	if req.Title == "" {
		return nil, domain.NewValidation("title es obligatorio")
	}
	if company.Industry == entity.IndustryTechnicalSolutions && req.AssetCode == "" {
		return nil, domain.NewValidation("asset_code es obligatorio para technical_solutions")
	}
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, domain.NewValidation("prioridad inválida: " + priority)
	}

	seq, err := uc.sequences.Next(companyID, billing.SequenceWorkOrder)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &entity.WorkOrder{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		OrderNumber:         billing.FormatNumber(billing.SequenceWorkOrder, seq),
		Title:               req.Title,
		Description:         req.Description,
		CreatedBy:           p.UserID,
		RequestedByClientID: req.RequestedByClientID,
		VehicleID:           req.VehicleID,
		AssignedTechnicians: req.AssignedTechnicians,
		Status:              entity.WorkOrderPending,
		Priority:            priority,
		AssetCode:           req.AssetCode,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ScheduledDate:       req.ScheduledDate,
		EstimatedCost:       req.EstimatedCost,
		QuotedPrice:         req.QuotedPrice,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if order.AssignedTechnicians == nil {
		order.AssignedTechnicians = []string{}
	}

	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}

	uc.notifier.NotifyAll(companyID, order.AssignedTechnicians, entity.NotifWorkOrderAssigned, map[string]any{
		"work_order_id": order.ID,
		"order_number":  order.OrderNumber,
		"title":         order.Title,
	})

	uc.log.Info().
		Str("work_order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("company_id", companyID).
		Msg("orden de trabajo creada")

	resp, err := uc.enrich(order)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List lista órdenes del tenant. La visibilidad por fila (técnicos y clientes)
// se traduce a SQL dentro de la misma query.
func (uc *UseCase) List(ctx context.Context, p authz.Principal, companyID string, q dto.ListWorkOrdersQuery) ([]dto.WorkOrderResponse, error) {
	decision := authz.Decide(p, authz.OpListWorkOrders, authz.Resource{
		CompanyID:        companyID,
		AssignedToFilter: q.AssignedTo,
	})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if q.Status != "" && !validStatus(q.Status) {
		return nil, domain.NewValidation("status inválido: " + q.Status)
	}
	q.DefaultPage()

	orders, err := uc.orders.List(companyID, repository.WorkOrderQuery{
		Status:     q.Status,
		AssignedTo: q.AssignedTo,
		Visibility: decision.WorkOrders,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return uc.enrichAll(orders)
}

// Get lee una orden aplicando visibilidad por fila. Una orden invisible o de
// otro tenant es indistinguible de inexistente.
func (uc *UseCase) Get(ctx context.Context, p authz.Principal, companyID, id string) (*dto.WorkOrderResponse, error) {
	decision := authz.Decide(p, authz.OpReadWorkOrder, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orders.Get(companyID, id, decision.WorkOrders)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.enrich(order)
}

// Update actualización parcial: solo los campos no-nil se aplican. Quitar el
// asset_code en un tenant technical_solutions se rechaza.
func (uc *UseCase) Update(ctx context.Context, p authz.Principal, companyID, id string, req dto.UpdateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	decision := authz.Decide(p, authz.OpUpdateWorkOrder, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	order, err := uc.orders.Get(companyID, id, nil)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if req.AssetCode != nil && *req.AssetCode == "" {
		company, err := uc.companies.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		if company != nil && company.Industry == entity.IndustryTechnicalSolutions {
			return nil, domain.NewValidation("asset_code es obligatorio para technical_solutions")
		}
	}

	previousStatus := order.Status
	if req.Title != nil {
		order.Title = *req.Title
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.RequestedByClientID != nil {
		order.RequestedByClientID = req.RequestedByClientID
	}
	if req.VehicleID != nil {
		order.VehicleID = req.VehicleID
	}
	if req.AssignedTechnicians != nil {
		order.AssignedTechnicians = *req.AssignedTechnicians
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, domain.NewValidation("status inválido: " + *req.Status)
		}
		order.Status = *req.Status
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, domain.NewValidation("prioridad inválida: " + *req.Priority)
		}
		order.Priority = *req.Priority
	}
	if req.AssetCode != nil {
		order.AssetCode = *req.AssetCode
	}
	if req.StartDate != nil {
		order.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		order.EndDate = req.EndDate
	}
	if req.ScheduledDate != nil {
		order.ScheduledDate = req.ScheduledDate
	}
	if req.EstimatedCost != nil {
		order.EstimatedCost = *req.EstimatedCost
	}
	if req.QuotedPrice != nil {
		order.QuotedPrice = *req.QuotedPrice
	}
	order.UpdatedAt = time.Now().UTC()

	if err := uc.orders.Update(order); err != nil {
		return nil, err
	}

	if order.Status != previousStatus {
		// El creador de la orden también se entera del cambio de estado.
		recipients := append([]string{}, order.AssignedTechnicians...)
		if order.CreatedBy != "" && !order.IsAssignedTo(order.CreatedBy) {
			recipients = append(recipients, order.CreatedBy)
		}
		uc.notifier.NotifyAll(companyID, recipients, entity.NotifWorkOrderStatusChanged, map[string]any{
			"work_order_id": order.ID,
			"order_number":  order.OrderNumber,
			"from":          previousStatus,
			"to":            order.Status,
		})
	}
	return uc.enrich(order)
}

// Approve pasa una orden a APPROVED (solo admins) y notifica a los técnicos.
func (uc *UseCase) Approve(ctx context.Context, p authz.Principal, companyID, id string) (*dto.WorkOrderResponse, error) {
	decision := authz.Decide(p, authz.OpApproveWorkOrder, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	order, err := uc.orders.Get(companyID, id, nil)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.WorkOrderCancelled || order.Status == entity.WorkOrderCompleted {
		return nil, domain.ErrConflict
	}

	if err := uc.orders.UpdateStatus(id, entity.WorkOrderApproved); err != nil {
		return nil, err
	}
	order.Status = entity.WorkOrderApproved
	order.UpdatedAt = time.Now().UTC()

	uc.notifier.NotifyAll(companyID, order.AssignedTechnicians, entity.NotifWorkOrderApproved, map[string]any{
		"work_order_id": order.ID,
		"order_number":  order.OrderNumber,
	})
	uc.log.Info().Str("work_order_id", id).Str("approved_by", p.UserID).Msg("orden aprobada")
	return uc.enrich(order)
}

// enrichAll resuelve los nombres de técnicos de todos los listados en un solo
// batch (sin N+1).
func (uc *UseCase) enrichAll(orders []*entity.WorkOrder) ([]dto.WorkOrderResponse, error) {
	idSet := map[string]struct{}{}
	for _, o := range orders {
		for _, id := range o.AssignedTechnicians {
			idSet[id] = struct{}{}
		}
	}
	names, err := uc.technicianNames(idSet)
	if err != nil {
		return nil, err
	}

	out := make([]dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toResponse(o, names))
	}
	return out, nil
}

func (uc *UseCase) enrich(order *entity.WorkOrder) (*dto.WorkOrderResponse, error) {
	idSet := map[string]struct{}{}
	for _, id := range order.AssignedTechnicians {
		idSet[id] = struct{}{}
	}
	names, err := uc.technicianNames(idSet)
	if err != nil {
		return nil, err
	}
	resp := toResponse(order, names)
	return &resp, nil
}

func (uc *UseCase) technicianNames(idSet map[string]struct{}) (map[string]string, error) {
	if len(idSet) == 0 {
		return map[string]string{}, nil
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := uc.users.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	return names, nil
}

func toResponse(o *entity.WorkOrder, names map[string]string) dto.WorkOrderResponse {
	technicianNames := make([]string, 0, len(o.AssignedTechnicians))
	for _, id := range o.AssignedTechnicians {
		if name, ok := names[id]; ok {
			technicianNames = append(technicianNames, name)
		}
	}
	return dto.WorkOrderResponse{
		ID:                  o.ID,
		CompanyID:           o.CompanyID,
		OrderNumber:         o.OrderNumber,
		Title:               o.Title,
		Description:         o.Description,
		CreatedBy:           o.CreatedBy,
		RequestedByClientID: o.RequestedByClientID,
		VehicleID:           o.VehicleID,
		AssignedTechnicians: o.AssignedTechnicians,
		TechnicianNames:     technicianNames,
		Status:              o.Status,
		Priority:            o.Priority,
		AssetCode:           o.AssetCode,
		StartDate:           o.StartDate,
		EndDate:             o.EndDate,
		ScheduledDate:       o.ScheduledDate,
		EstimatedCost:       o.EstimatedCost,
		QuotedPrice:         o.QuotedPrice,
		PaidAmount:          o.PaidAmount,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}
