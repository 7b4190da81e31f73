package usecase

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

// CommentUseCase comentarios sobre órdenes de trabajo.
type CommentUseCase struct {
	comments repository.CommentRepository
	orders   repository.WorkOrderRepository
	log      *logger.Logger
}

// NewCommentUseCase crea el caso de uso de comentarios.
func NewCommentUseCase(comments repository.CommentRepository, orders repository.WorkOrderRepository, log *logger.Logger) *CommentUseCase {
	return &CommentUseCase{comments: comments, orders: orders, log: log}
}

// visibleOrder carga la orden aplicando la visibilidad por fila del principal;
// una orden invisible es indistinguible de inexistente.
func (uc *CommentUseCase) visibleOrder(p authz.Principal, companyID, workOrderID string) (*entity.WorkOrder, error) {
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
	return order, nil
}

// Create agrega un comentario a una orden visible para el principal.
func (uc *CommentUseCase) Create(ctx context.Context, p authz.Principal, companyID, workOrderID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if req.Body == "" {
		return nil, domain.NewValidation("body es obligatorio")
	}
	if _, err := uc.visibleOrder(p, companyID, workOrderID); err != nil {
		return nil, err
	}
	decision := authz.Decide(p, authz.OpCreateComment, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	now := time.Now().UTC()
	comment := &entity.Comment{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		WorkOrderID: workOrderID,
		OwnerID:     p.UserID,
		Body:        req.Body,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.comments.Create(comment); err != nil {
		return nil, err
	}
	resp := toCommentResponse(comment)
	return &resp, nil
}

// List lista los comentarios de una orden visible para el principal.
func (uc *CommentUseCase) List(ctx context.Context, p authz.Principal, companyID, workOrderID string) ([]dto.CommentResponse, error) {
	if _, err := uc.visibleOrder(p, companyID, workOrderID); err != nil {
		return nil, err
	}
	decision := authz.Decide(p, authz.OpListComments, authz.Resource{CompanyID: companyID})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	comments, err := uc.comments.ListByWorkOrder(companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out, nil
}

// Update edita un comentario (autor o admins del tenant).
func (uc *CommentUseCase) Update(ctx context.Context, p authz.Principal, companyID, commentID string, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	if req.Body == "" {
		return nil, domain.NewValidation("body es obligatorio")
	}
	comment, err := uc.comments.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	decision := authz.Decide(p, authz.OpEditComment, authz.Resource{
		CompanyID: comment.CompanyID,
		OwnerID:   comment.OwnerID,
	})
	if !decision.Allowed() {
		return nil, decision.Err
	}

	comment.Body = req.Body
	comment.UpdatedAt = time.Now().UTC()
	if err := uc.comments.Update(comment); err != nil {
		return nil, err
	}
	resp := toCommentResponse(comment)
	return &resp, nil
}

// Delete elimina un comentario (autor o admins del tenant).
func (uc *CommentUseCase) Delete(ctx context.Context, p authz.Principal, companyID, commentID string) error {
	comment, err := uc.comments.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.CompanyID != companyID {
		return domain.ErrNotFound
	}

	decision := authz.Decide(p, authz.OpDeleteComment, authz.Resource{
		CompanyID: comment.CompanyID,
		OwnerID:   comment.OwnerID,
	})
	if !decision.Allowed() {
		return decision.Err
	}
	return uc.comments.Delete(commentID)
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		WorkOrderID: c.WorkOrderID,
		OwnerID:     c.OwnerID,
		Body:        c.Body,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
