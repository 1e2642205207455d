package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
)

// NotificationRepository хранит уведомления пользователей.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
