// Package notify concentra la emisión de notificaciones in-app. Las
// notificaciones son best-effort: un fallo al insertarlas se loguea y nunca
// propaga error a la operación que las originó.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
	"github.com/jhoicas/ServiOrden-api/pkg/logger"
)

// Sink recibe eventos de notificación desde los casos de uso.
type Sink interface {
	Notify(companyID, userID, notifType string, payload map[string]any)
	NotifyAll(companyID string, userIDs []string, notifType string, payload map[string]any)
}

type sink struct {
	repo repository.NotificationRepository
	log  *logger.Logger
}

// NewSink crea el sink respaldado por el repositorio de notificaciones.
func NewSink(repo repository.NotificationRepository, log *logger.Logger) Sink {
	return &sink{repo: repo, log: log}
}

func (s *sink) Notify(companyID, userID, notifType string, payload map[string]any) {
	if userID == "" {
		return
	}
	n := &entity.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		CompanyID: companyID,
		Type:      notifType,
		Payload:   payload,
		SentAt:    time.Now().UTC(),
		Channel:   "in-app",
	}
	if err := s.repo.Create(n); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", userID).
			Str("type", notifType).
			Msg("no se pudo registrar la notificación")
		return
	}
	s.log.Debug().Str("user_id", userID).Str("type", notifType).Msg("notificación emitida")
}

func (s *sink) NotifyAll(companyID string, userIDs []string, notifType string, payload map[string]any) {
	for _, id := range userIDs {
		s.Notify(companyID, id, notifType, payload)
	}
}
