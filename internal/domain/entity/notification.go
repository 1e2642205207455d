package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification — строка входящих уведомлений пользователя.
// Порядок создания строк в рамках одного запроса задаёт порядок ленты.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Event     string
	Payload   []byte
	IsRead    bool
	CreatedAt time.Time
}
