package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/notification"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/goroutine"
	"github.com/staffhub/staffing-backend/internal/logger"
)

const dispatchQueueSize = 256

type dispatchTask struct {
	event      string
	recipients []uuid.UUID
	payload    []byte
}

// NotificationService доставляет уведомления в почтовый ящик пользователей.
// Доставка асинхронная, но очередь одна и разбирается одним воркером,
// поэтому порядок событий одной операции сохраняется. Сбой доставки
// логируется и не влияет на породившую событие операцию.
type NotificationService struct {
	repo  repository.NotificationRepository
	queue chan dispatchTask
	done  chan struct{}
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	s := &NotificationService{
		repo:  repo,
		queue: make(chan dispatchTask, dispatchQueueSize),
		done:  make(chan struct{}),
	}
	goroutine.SafeGo(s.run)
	return s
}

func (s *NotificationService) run() {
	defer close(s.done)
	for task := range s.queue {
		s.deliver(task)
	}
}

func (s *NotificationService) deliver(task dispatchTask) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, userID := range task.recipients {
		n := &entity.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Event:     task.event,
			Payload:   task.payload,
			CreatedAt: time.Now(),
		}
		if err := s.repo.CreateNotification(ctx, n); err != nil {
			logger.Log.WithFields(map[string]interface{}{
				"event":   task.event,
				"user_id": userID,
				"error":   err.Error(),
			}).Error("notification service: не удалось сохранить уведомление")
		}
	}
}

// Stop дожидается разбора очереди и останавливает воркер.
func (s *NotificationService) Stop() {
	close(s.queue)
	<-s.done
}

func (s *NotificationService) enqueue(event string, payload interface{}, recipients ...uuid.UUID) {
	if len(recipients) == 0 {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithField("event", event).Error("notification service: не удалось сериализовать уведомление")
		return
	}

	select {
	case s.queue <- dispatchTask{event: event, recipients: recipients, payload: body}:
	default:
		logger.Log.WithField("event", event).Warn("notification service: очередь уведомлений переполнена")
	}
}

type orderPayload struct {
	OrderID uuid.UUID `json:"order_id"`
	About   string    `json:"about"`
	Address string    `json:"address"`
	Status  string    `json:"status"`
}

type replyPayload struct {
	OrderID      uuid.UUID `json:"order_id"`
	DetailID     uuid.UUID `json:"detail_id"`
	ContracteeID uuid.UUID `json:"contractee_id"`
	Status       string    `json:"status"`
}

func orderBody(order *entity.Order) orderPayload {
	return orderPayload{
		OrderID: order.ID,
		About:   order.About,
		Address: order.Address,
		Status:  string(order.Status),
	}
}

func replyBody(order *entity.Order, reply *entity.Reply) replyPayload {
	return replyPayload{
		OrderID:      order.ID,
		DetailID:     reply.DetailID,
		ContracteeID: reply.ContracteeID,
		Status:       string(reply.Status),
	}
}

func (s *NotificationService) OrderCreated(ctx context.Context, order *entity.Order, adminIDs []uuid.UUID) {
	s.enqueue(notification.EventOrderCreated, orderBody(order), adminIDs...)
}

func (s *NotificationService) OrderPublished(ctx context.Context, order *entity.Order, contracteeIDs []uuid.UUID) {
	s.enqueue(notification.EventOrderPublished, orderBody(order), contracteeIDs...)
}

func (s *NotificationService) AdminAssigned(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	s.enqueue(notification.EventAdminAssigned, orderBody(order), contractorID)
}

func (s *NotificationService) OrderApproved(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	s.enqueue(notification.EventOrderApproved, orderBody(order), contractorID)
}

func (s *NotificationService) OrderDisapproved(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	s.enqueue(notification.EventOrderDisapproved, orderBody(order), contractorID)
}

func (s *NotificationService) OrderCancelled(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	s.enqueue(notification.EventOrderCancelled, orderBody(order), userIDs...)
}

func (s *NotificationService) OrderClosed(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	s.enqueue(notification.EventOrderClosed, orderBody(order), contractorID)
}

func (s *NotificationService) OrderOpened(ctx context.Context, order *entity.Order, contractorID uuid.UUID) {
	s.enqueue(notification.EventOrderOpened, orderBody(order), contractorID)
}

func (s *NotificationService) OrderSetActive(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	s.enqueue(notification.EventOrderSetActive, orderBody(order), userIDs...)
}

func (s *NotificationService) OrderFulfilled(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	s.enqueue(notification.EventOrderFulfilled, orderBody(order), userIDs...)
}

func (s *NotificationService) OrderAutoClosed(ctx context.Context, order *entity.Order, userIDs []uuid.UUID) {
	s.enqueue(notification.EventOrderAutoClosed, orderBody(order), userIDs...)
}

func (s *NotificationService) ReplySubmitted(ctx context.Context, order *entity.Order, reply *entity.Reply, contractorID uuid.UUID) {
	s.enqueue(notification.EventReplySubmitted, replyBody(order, reply), contractorID)
}

func (s *NotificationService) ReplyApproved(ctx context.Context, order *entity.Order, reply *entity.Reply, contracteeID uuid.UUID) {
	s.enqueue(notification.EventReplyApproved, replyBody(order, reply), contracteeID)
}

func (s *NotificationService) ReplyDisapproved(ctx context.Context, order *entity.Order, reply *entity.Reply, contracteeID uuid.UUID) {
	s.enqueue(notification.EventReplyDisapproved, replyBody(order, reply), contracteeID)
}

func (s *NotificationService) RepliesDropped(ctx context.Context, order *entity.Order, contracteeIDs []uuid.UUID) {
	s.enqueue(notification.EventReplyDropped, orderBody(order), contracteeIDs...)
}

func (s *NotificationService) UserStatusChanged(ctx context.Context, user *entity.User) {
	s.enqueue(notification.EventUserStatusChanged, map[string]string{
		"status": string(user.Status),
	}, user.ID)
}

// ListNotifications возвращает уведомления пользователя.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.repo.ListNotifications(ctx, userID, limit, offset)
}

// MarkRead отмечает уведомление прочитанным.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead отмечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}
