package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/staffhub/staffing-backend/internal/domain/entity"
)

// NotificationRepository хранит уведомления во входящих пользователей.
type NotificationRepository struct {
	db sqlx.ExtContext
}

func NewNotificationRepository(db sqlx.ExtContext) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, event, payload, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.UserID, notification.Event, notification.Payload)
	if err != nil {
		return translate("не удалось сохранить уведомление", err)
	}
	return nil
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []notificationRow
	query := `
		SELECT id, user_id, event, payload, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, userID, limit, offset); err != nil {
		return nil, translate("не удалось выбрать уведомления", err)
	}

	notifications := make([]entity.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.toEntity())
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE user_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, notificationID); err != nil {
		return translate("не удалось отметить уведомление прочитанным", err)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return translate("не удалось отметить уведомления прочитанными", err)
	}
	return nil
}
