package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
)

// Типы событий уведомлений.
const (
	EventOrderCreated      = "order_created"
	EventOrderPublished    = "order_published"
	EventAdminAssigned     = "admin_assigned"
	EventOrderApproved     = "order_approved"
	EventOrderDisapproved  = "order_disapproved"
	EventOrderCancelled    = "order_cancelled"
	EventOrderClosed       = "order_closed"
	EventOrderOpened       = "order_opened"
	EventOrderSetActive    = "order_set_active"
	EventOrderFulfilled    = "order_fulfilled"
	EventOrderAutoClosed   = "order_auto_closed"
	EventReplySubmitted    = "reply_submitted"
	EventReplyApproved     = "reply_approved"
	EventReplyDisapproved  = "reply_disapproved"
	EventReplyDropped      = "reply_dropped"
	EventUserStatusChanged = "user_status_changed"
)

// Notifier рассылает уведомления о событиях заказов и откликов.
// Доставка не влияет на исход операции: методы не возвращают ошибок,
// сбои гасятся внутри реализации. Порядок вызовов сохраняется.
type Notifier interface {
	// Новый заказ от заказчика — всем администраторам.
	OrderCreated(ctx context.Context, order *entity.Order, adminIDs []uuid.UUID)
	// Заказ опубликован — подходящим исполнителям.
	OrderPublished(ctx context.Context, order *entity.Order, contracteeIDs []uuid.UUID)
	// Заказ взят администратором — заказчику.
	AdminAssigned(ctx context.Context, order *entity.Order, contractorID uuid.UUID)
	OrderApproved(ctx context.Context, order *entity.Order, contractorID uuid.UUID)
	OrderDisapproved(ctx context.Context, order *entity.Order, contractorID uuid.UUID)
	// Отмена заказа — всем затронутым, кроме инициатора.
	OrderCancelled(ctx context.Context, order *entity.Order, userIDs []uuid.UUID)
	OrderClosed(ctx context.Context, order *entity.Order, contractorID uuid.UUID)
	OrderOpened(ctx context.Context, order *entity.Order, contractorID uuid.UUID)
	// Заказ переведён в работу — принятым исполнителям и заказчику.
	OrderSetActive(ctx context.Context, order *entity.Order, userIDs []uuid.UUID)
	OrderFulfilled(ctx context.Context, order *entity.Order, userIDs []uuid.UUID)
	// Заказ закрыт автоматически после заполнения всех позиций.
	OrderAutoClosed(ctx context.Context, order *entity.Order, userIDs []uuid.UUID)

	// Новый отклик — заказчику.
	ReplySubmitted(ctx context.Context, order *entity.Order, reply *entity.Reply, contractorID uuid.UUID)
	ReplyApproved(ctx context.Context, order *entity.Order, reply *entity.Reply, contracteeID uuid.UUID)
	ReplyDisapproved(ctx context.Context, order *entity.Order, reply *entity.Reply, contracteeID uuid.UUID)
	// Отклики сброшены при заполнении позиции или заказа.
	RepliesDropped(ctx context.Context, order *entity.Order, contracteeIDs []uuid.UUID)

	UserStatusChanged(ctx context.Context, user *entity.User)
}
