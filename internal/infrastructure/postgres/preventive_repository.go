package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.PreventiveTaskRepository = (*PreventiveTaskRepo)(nil)

// PreventiveTaskRepo implementación de PreventiveTaskRepository.
type PreventiveTaskRepo struct {
	q Querier
}

// NewPreventiveTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPreventiveTaskRepository(q Querier) *PreventiveTaskRepo {
	return &PreventiveTaskRepo{q: q}
}

// Create persiste una tarea preventiva.
func (r *PreventiveTaskRepo) Create(task *entity.PreventiveTask) error {
	query := `
		INSERT INTO preventive_tasks (id, company_id, title, description, asset_location,
			frequency, next_due_date, assigned_technicians, last_completed_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.CompanyID, task.Title, task.Description, task.AssetLocation,
		task.Frequency, task.NextDueDate, task.AssignedTechnicians,
		task.LastCompletedDate, task.Status, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert preventive task: %w", err)
	}
	return nil
}

// Get obtiene una tarea del tenant.
func (r *PreventiveTaskRepo) Get(companyID, id string) (*entity.PreventiveTask, error) {
	query := `
		SELECT id, company_id, title, description, asset_location, frequency, next_due_date,
			assigned_technicians, last_completed_date, status, created_at
		FROM preventive_tasks WHERE company_id = $1 AND id = $2`
	t, err := scanPreventiveTask(r.q.QueryRow(context.Background(), query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preventive task: %w", err)
	}
	return t, nil
}

// ListByCompany lista las tareas del tenant ordenadas por vencimiento.
func (r *PreventiveTaskRepo) ListByCompany(companyID string) ([]*entity.PreventiveTask, error) {
	query := `
		SELECT id, company_id, title, description, asset_location, frequency, next_due_date,
			assigned_technicians, last_completed_date, status, created_at
		FROM preventive_tasks WHERE company_id = $1 ORDER BY next_due_date ASC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list preventive tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.PreventiveTask
	for rows.Next() {
		t, err := scanPreventiveTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preventive task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Complete registra la completación y reprograma la próxima fecha.
func (r *PreventiveTaskRepo) Complete(id string, completedAt, nextDue time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE preventive_tasks SET last_completed_date = $2, next_due_date = $3
		WHERE id = $1`, id, completedAt, nextDue)
	if err != nil {
		return fmt.Errorf("complete preventive task: %w", err)
	}
	return nil
}

func scanPreventiveTask(row pgx.Row) (*entity.PreventiveTask, error) {
	var t entity.PreventiveTask
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Title, &t.Description, &t.AssetLocation, &t.Frequency,
		&t.NextDueDate, &t.AssignedTechnicians, &t.LastCompletedDate, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.AssignedTechnicians == nil {
		t.AssignedTechnicians = []string{}
	}
	return &t, nil
}
