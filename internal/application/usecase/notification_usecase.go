package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ServiOrden-api/internal/application/dto"
	"github.com/jhoicas/ServiOrden-api/internal/domain"
	"github.com/jhoicas/ServiOrden-api/internal/domain/authz"
	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

// NotificationUseCase lectura y marcado de notificaciones in-app.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase crea el caso de uso de notificaciones.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

// List lista las notificaciones de un usuario. Solo el propio usuario (o
// SUPERADMIN) puede leerlas.
func (uc *NotificationUseCase) List(ctx context.Context, p authz.Principal, targetUserID string, limit int) ([]dto.NotificationResponse, error) {
	if targetUserID == "" {
		targetUserID = p.UserID
	}
	decision := authz.Decide(p, authz.OpReadNotifications, authz.Resource{TargetUserID: targetUserID})
	if !decision.Allowed() {
		return nil, decision.Err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	notifications, err := uc.notifications.ListByUser(targetUserID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación como leída (solo su destinatario o
// SUPERADMIN). Marcar dos veces es idempotente.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, p authz.Principal, id string) (*dto.NotificationResponse, error) {
	notification, err := uc.notifications.GetByID(id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, domain.ErrNotFound
	}

	decision := authz.Decide(p, authz.OpMarkNotificationRead, authz.Resource{RecipientID: notification.UserID})
	if !decision.Allowed() {
		// Notificación ajena: indistinguible de inexistente.
		return nil, domain.ErrNotFound
	}

	if notification.ReadAt == nil {
		now := time.Now().UTC()
		if err := uc.notifications.MarkRead(id, now); err != nil {
			return nil, err
		}
		notification.ReadAt = &now
	}
	resp := toNotificationResponse(notification)
	return &resp, nil
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		CompanyID: n.CompanyID,
		Type:      n.Type,
		Payload:   n.Payload,
		ReadAt:    n.ReadAt,
		SentAt:    n.SentAt,
		Channel:   n.Channel,
	}
}
