package repository

import (
	"time"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// PreventiveTaskRepository define el puerto de persistencia para PreventiveTask.
type PreventiveTaskRepository interface {
	Create(task *entity.PreventiveTask) error
	Get(companyID, id string) (*entity.PreventiveTask, error)
	ListByCompany(companyID string) ([]*entity.PreventiveTask, error)
	// Complete registra la completación y la nueva fecha de vencimiento.
	Complete(id string, completedAt, nextDue time.Time) error
}

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	ListByUser(userID string, limit int) ([]*entity.Notification, error)
	MarkRead(id string, readAt time.Time) error
}

// CommentRepository define el puerto de persistencia para Comment.
type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	ListByWorkOrder(companyID, workOrderID string) ([]*entity.Comment, error)
	Update(comment *entity.Comment) error
	Delete(id string) error
}
