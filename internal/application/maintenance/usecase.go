// Package maintenance implementa los casos de uso de mantenimiento preventivo.
package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/application/notify"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/maintenance"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// UseCase casos de uso de tareas preventivas.
type UseCase struct {
	tasks    repository.PreventiveTaskRepository
	notifier notify.Sink
	log      *logger.Logger
}

// NewUseCase crea el caso de uso de mantenimiento preventivo.
func NewUseCase(tasks repository.PreventiveTaskRepository, notifier notify.Sink, log *logger.Logger) *UseCase {
	return &UseCase{tasks: tasks, notifier: notifier, log: log}
}

// Create registra una tarea preventiva (solo admins). La primera fecha de
// vencimiento se calcula desde start_date, o desde ahora si no se da.
func (uc *UseCase) Create(ctx context.Context, p authz.Principal, companyID string, req dto.CreatePreventiveTaskRequest) (*dto.PreventiveTaskResponse, error) {
	decision := authz.Decide(p, authz.OpCreatePreventiveTask, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if req.Title == "" {
		return nil, domain.NewValidation("title es obligatorio")
	}
	if !maintenance.ValidFrequency(req.Frequency) {
		return nil, domain.NewValidation("frecuencia inválida: " + req.Frequency)
	}

	now := time.Now().UTC()
	base := now
	if req.StartDate != nil {
		base = req.StartDate.UTC()
	}

	task := &entity.PreventiveTask{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		Title:               req.Title,
		Description:         req.Description,
		AssetLocation:       req.AssetLocation,
		Frequency:           req.Frequency,
		NextDueDate:         maintenance.NextDueDate(base, req.Frequency),
		AssignedTechnicians: req.AssignedTechnicians,
		Status:              entity.PreventiveActive,
		CreatedAt:           now,
	}
	if task.AssignedTechnicians == nil {
		task.AssignedTechnicians = []string{}
	}

	if err := uc.tasks.Create(task); err != nil {
		return nil, err
	}
	uc.log.Info().Str("task_id", task.ID).Str("frequency", task.Frequency).Msg("tarea preventiva creada")
	resp := toTaskResponse(task)
	return &resp, nil
}

// List lista las tareas preventivas del tenant.
func (uc *UseCase) List(ctx context.Context, p authz.Principal, companyID string) ([]dto.PreventiveTaskResponse, error) {
	decision := authz.Decide(p, authz.OpListPreventiveTasks, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	tasks, err := uc.tasks.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PreventiveTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out, nil
}

// Complete marca la tarea como completada hoy y reprograma la próxima fecha
// de vencimiento a partir de la completación.
func (uc *UseCase) Complete(ctx context.Context, p authz.Principal, companyID, taskID string) (*dto.CompleteTaskResponse, error) {
	decision := authz.Decide(p, authz.OpCompletePreventiveTask, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	task, err := uc.tasks.Get(companyID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}

	completedAt := time.Now().UTC()
	nextDue := maintenance.NextDueDate(completedAt, task.Frequency)
	if err := uc.tasks.Complete(taskID, completedAt, nextDue); err != nil {
		return nil, err
	}

	uc.log.Info().Str("task_id", taskID).Time("next_due", nextDue).Msg("tarea preventiva completada")
	return &dto.CompleteTaskResponse{
		Message:     "tarea completada",
		NextDueDate: nextDue,
	}, nil
}

func toTaskResponse(t *entity.PreventiveTask) dto.PreventiveTaskResponse {
	return dto.PreventiveTaskResponse{
		ID:                  t.ID,
		CompanyID:           t.CompanyID,
		Title:               t.Title,
		Description:         t.Description,
		AssetLocation:       t.AssetLocation,
		Frequency:           t.Frequency,
		NextDueDate:         t.NextDueDate,
		AssignedTechnicians: t.AssignedTechnicians,
		LastCompletedDate:   t.LastCompletedDate,
		Status:              t.Status,
		CreatedAt:           t.CreatedAt,
	}
}
