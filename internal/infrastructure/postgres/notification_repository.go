package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
	"github.com/jhoicas/ServiOrden-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository. El payload se
// persiste como JSONB.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(notification *entity.Notification) error {
	payload, err := json.Marshal(notification.Payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	var companyID *string
	if notification.CompanyID != "" {
		companyID = &notification.CompanyID
	}
	query := `
		INSERT INTO notifications (id, user_id, company_id, type, payload, read_at, sent_at, channel)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		notification.ID, notification.UserID, companyID, notification.Type, payload,
		notification.ReadAt, notification.SentAt, notification.Channel,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(id string) (*entity.Notification, error) {
	query := `
		SELECT id, user_id, company_id, type, payload, read_at, sent_at, channel
		FROM notifications WHERE id = $1`
	n, err := scanNotification(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// ListByUser lista las notificaciones de un usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(userID string, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, company_id, type, payload, read_at, sent_at, channel
		FROM notifications WHERE user_id = $1 ORDER BY sent_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(id string, readAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read_at = $2 WHERE id = $1`, id, readAt)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	var companyID *string
	var payload []byte
	err := row.Scan(&n.ID, &n.UserID, &companyID, &n.Type, &payload, &n.ReadAt, &n.SentAt, &n.Channel)
	if err != nil {
		return nil, err
	}
	if companyID != nil {
		n.CompanyID = *companyID
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &n.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal notification payload: %w", err)
		}
	}
	return &n, nil
}
