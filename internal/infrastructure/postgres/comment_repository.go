package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo implementación de CommentRepository.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create persiste un comentario.
func (r *CommentRepo) Create(comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, company_id, work_order_id, owner_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		comment.ID, comment.CompanyID, comment.WorkOrderID, comment.OwnerID,
		comment.Body, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID obtiene un comentario por ID.
func (r *CommentRepo) GetByID(id string) (*entity.Comment, error) {
	query := `
		SELECT id, company_id, work_order_id, owner_id, body, created_at, updated_at
		FROM comments WHERE id = $1`
	var c entity.Comment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.WorkOrderID, &c.OwnerID, &c.Body, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

// ListByWorkOrder lista los comentarios de una orden en orden cronológico.
func (r *CommentRepo) ListByWorkOrder(companyID, workOrderID string) ([]*entity.Comment, error) {
	query := `
		SELECT id, company_id, work_order_id, owner_id, body, created_at, updated_at
		FROM comments WHERE company_id = $1 AND work_order_id = $2 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.WorkOrderID, &c.OwnerID,
			&c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza el cuerpo de un comentario.
func (r *CommentRepo) Update(comment *entity.Comment) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE comments SET body = $2, updated_at = $3 WHERE id = $1`,
		comment.ID, comment.Body, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete elimina un comentario.
func (r *CommentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
