package reply

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/notification"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// SubmitReplyUseCase создаёт отклик исполнителя на позицию заказа.
// Правила проверяются по порядку, первое нарушенное определяет ошибку:
// заказ открыт, исполнителю подходит позиция по полу, до начала смены
// остался запас времени, исполнитель не занят в этот день, повторно
// на позицию не откликался, и на позиции остались места.
type SubmitReplyUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
	cutoff    time.Duration
	now       func() time.Time
}

func NewSubmitReplyUseCase(txManager repository.TxManager, notifier notification.Notifier, cutoff time.Duration) *SubmitReplyUseCase {
	if cutoff <= 0 {
		cutoff = entity.DefaultReplyCutoff
	}
	return &SubmitReplyUseCase{
		txManager: txManager,
		notifier:  notifier,
		cutoff:    cutoff,
		now:       time.Now,
	}
}

func (uc *SubmitReplyUseCase) Execute(ctx context.Context, detailID, contracteeID uuid.UUID) (*entity.Reply, error) {
	var (
		reply *entity.Reply
		order *entity.Order
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		order, err = tx.OrderQueries().GetOrderForDetail(ctx, detailID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.ErrDetailNotFound
		}
		if !order.CanHaveReplies() {
			return apperror.ReplySubmitNotAllowed("заказ не принимает отклики")
		}

		detail, err := tx.OrderQueries().GetDetail(ctx, detailID)
		if err != nil {
			return err
		}
		if detail == nil {
			return apperror.ErrDetailNotFound
		}

		contractee, err := tx.UserQueries().GetContractee(ctx, contracteeID)
		if err != nil {
			return err
		}
		if contractee == nil {
			return apperror.ErrUserNotFound
		}
		if !detail.IsSuitableFor(contractee.Gender) {
			return apperror.ReplySubmitNotAllowed("позиция не подходит по полу")
		}

		if !detail.AcceptsRepliesAt(uc.now(), uc.cutoff) {
			return apperror.ReplySubmitNotAllowed("до начала смены осталось слишком мало времени")
		}

		accepted := valueobject.ReplyStatusAccepted
		busy, err := tx.ReplyQueries().HasReply(ctx, repository.ReplyFilter{
			ContracteeID: &contracteeID,
			Date:         &detail.Date,
			Status:       &accepted,
		})
		if err != nil {
			return err
		}
		if busy {
			return apperror.ReplySubmitNotAllowed("на эту дату уже есть подтверждённый отклик")
		}

		existing, err := tx.ReplyQueries().GetReply(ctx, contracteeID, detailID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.ReplySubmitNotAllowed("отклик на эту позицию уже отправлен")
		}

		availability, err := tx.ReplyQueries().DetailAvailability(ctx, detailID)
		if err != nil {
			return err
		}
		if availability.IsFull() {
			return apperror.ReplySubmitNotAllowed("на позиции не осталось свободных мест")
		}

		reply, err = tx.ReplyCommands().CreateReply(ctx, entity.NewReply(contracteeID, detail))
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.ReplySubmitted(ctx, order, reply, order.ContractorID)

	return reply, nil
}
