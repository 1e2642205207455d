package reply

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/notification"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

type ApproveReplyInput struct {
	DetailID     uuid.UUID
	ContracteeID uuid.UUID
	ActorID      uuid.UUID
	ActorRole    valueobject.Role
}

// ApproveReplyUseCase подтверждает отклик и распределяет место на позиции.
// Подтверждение уменьшает остаток мест и запускает каскад: снимаются
// остальные отклики исполнителя на эту дату; если позиция заполнилась —
// снимаются её отклики; если заполнились все позиции — заказ закрывается
// и снимаются все его неподтверждённые отклики. Остатки читаются
// с блокировкой всех строк позиций заказа в порядке их id, поэтому
// два одновременных подтверждения на последнее место не проходят оба,
// а подтверждения по разным позициям не пересекаются во встречном
// порядке блокировок.
type ApproveReplyUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewApproveReplyUseCase(txManager repository.TxManager, notifier notification.Notifier) *ApproveReplyUseCase {
	return &ApproveReplyUseCase{txManager: txManager, notifier: notifier}
}

func (uc *ApproveReplyUseCase) Execute(ctx context.Context, input ApproveReplyInput) (*entity.Reply, error) {
	var (
		reply      *entity.Reply
		order      *entity.Order
		dropped    []uuid.UUID
		autoClosed bool
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		complete, err := tx.ReplyQueries().GetCompleteReply(ctx, input.ContracteeID, input.DetailID)
		if err != nil {
			return err
		}
		if complete == nil {
			return apperror.ErrReplyNotFound
		}
		order = &complete.Order

		if err := authorizeReplyAction(order, input.ActorID, input.ActorRole); err != nil {
			return err
		}
		if !order.CanHaveReplies() {
			return apperror.ErrOrderActionNotAllowed
		}
		if !complete.Reply.CanBeApproved() {
			return apperror.ErrReplyStatusChangeNotAllowed
		}

		locked, err := tx.ReplyQueries().OrderAvailability(ctx, order.ID)
		if err != nil {
			return err
		}
		if detailFull(locked, input.DetailID) {
			return apperror.ErrDetailFull
		}

		reply, err = tx.ReplyCommands().SetReplyStatus(ctx, input.ContracteeID, input.DetailID, valueobject.ReplyStatusAccepted)
		if err != nil {
			return err
		}

		// Другие отклики исполнителя на эту дату больше не актуальны.
		sameDate, err := tx.ReplyCommands().DropReplies(ctx, repository.ReplyFilter{
			ContracteeID: &input.ContracteeID,
			Date:         &complete.Detail.Date,
		})
		if err != nil {
			return err
		}
		dropped = appendContractees(dropped, sameDate, input.ContracteeID)

		availabilities, err := tx.ReplyQueries().OrderAvailability(ctx, order.ID)
		if err != nil {
			return err
		}

		switch {
		case entity.AllFull(availabilities):
			autoClosed = true
			order, err = tx.OrderCommands().SetOrderStatus(ctx, order.ID, valueobject.OrderStatusClosed)
			if err != nil {
				return err
			}
			orderWide, err := tx.ReplyCommands().DropReplies(ctx, repository.ReplyFilter{OrderID: &order.ID})
			if err != nil {
				return err
			}
			dropped = appendContractees(dropped, orderWide, input.ContracteeID)
		case detailFull(availabilities, input.DetailID):
			detailWide, err := tx.ReplyCommands().DropReplies(ctx, repository.ReplyFilter{DetailID: &input.DetailID})
			if err != nil {
				return err
			}
			dropped = appendContractees(dropped, detailWide, input.ContracteeID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сначала затронутые, подтверждённый исполнитель — последним.
	uc.notifier.RepliesDropped(ctx, order, dropped)
	if autoClosed {
		uc.notifier.OrderAutoClosed(ctx, order, supervisorsOf(order))
	}
	uc.notifier.ReplyApproved(ctx, order, reply, input.ContracteeID)

	return reply, nil
}

// DisapproveReplyUseCase отклоняет неподтверждённый отклик.
type DisapproveReplyUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewDisapproveReplyUseCase(txManager repository.TxManager, notifier notification.Notifier) *DisapproveReplyUseCase {
	return &DisapproveReplyUseCase{txManager: txManager, notifier: notifier}
}

func (uc *DisapproveReplyUseCase) Execute(ctx context.Context, input ApproveReplyInput) (*entity.Reply, error) {
	var (
		reply *entity.Reply
		order *entity.Order
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		complete, err := tx.ReplyQueries().GetCompleteReply(ctx, input.ContracteeID, input.DetailID)
		if err != nil {
			return err
		}
		if complete == nil {
			return apperror.ErrReplyNotFound
		}
		order = &complete.Order

		if err := authorizeReplyAction(order, input.ActorID, input.ActorRole); err != nil {
			return err
		}
		if !complete.Reply.CanBeApproved() {
			return apperror.ErrReplyStatusChangeNotAllowed
		}

		reply, err = tx.ReplyCommands().SetReplyStatus(ctx, input.ContracteeID, input.DetailID, valueobject.ReplyStatusDisapproved)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.ReplyDisapproved(ctx, order, reply, input.ContracteeID)

	return reply, nil
}

// PayReplyUseCase отмечает подтверждённый отклик оплаченным.
// Доступен куратору после выполнения заказа.
type PayReplyUseCase struct {
	txManager repository.TxManager
}

func NewPayReplyUseCase(txManager repository.TxManager) *PayReplyUseCase {
	return &PayReplyUseCase{txManager: txManager}
}

func (uc *PayReplyUseCase) Execute(ctx context.Context, input ApproveReplyInput) (*entity.Reply, error) {
	var reply *entity.Reply

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		complete, err := tx.ReplyQueries().GetCompleteReply(ctx, input.ContracteeID, input.DetailID)
		if err != nil {
			return err
		}
		if complete == nil {
			return apperror.ErrReplyNotFound
		}
		if input.ActorRole != valueobject.RoleAdmin || !complete.Order.IsSupervisedBy(input.ActorID) {
			return apperror.ErrForbidden
		}
		if !complete.Order.IsFulfilled() || !complete.Reply.IsAccepted() {
			return apperror.ErrReplyStatusChangeNotAllowed
		}

		reply, err = tx.ReplyCommands().SetReplyStatus(ctx, input.ContracteeID, input.DetailID, valueobject.ReplyStatusPaid)
		return err
	})
	if err != nil {
		return nil, err
	}

	return reply, nil
}

// authorizeReplyAction допускает к решениям по откликам только
// заказчика-владельца заказа. Куратор распоряжается статусами заказа,
// но отбор исполнителей остаётся за заказчиком.
func authorizeReplyAction(order *entity.Order, actorID uuid.UUID, actorRole valueobject.Role) error {
	if actorRole != valueobject.RoleContractor {
		return apperror.ErrPermissionDenied
	}
	if !order.IsOwnedBy(actorID) {
		return apperror.ErrForbidden
	}
	return nil
}

func detailFull(availabilities []entity.DetailAvailability, detailID uuid.UUID) bool {
	for _, av := range availabilities {
		if av.DetailID == detailID {
			return av.IsFull()
		}
	}
	return false
}

func appendContractees(ids []uuid.UUID, replies []entity.Reply, except uuid.UUID) []uuid.UUID {
	for _, r := range replies {
		if r.ContracteeID != except {
			ids = append(ids, r.ContracteeID)
		}
	}
	return ids
}

func supervisorsOf(order *entity.Order) []uuid.UUID {
	ids := []uuid.UUID{order.ContractorID}
	if order.AdminID != nil {
		ids = append(ids, *order.AdminID)
	}
	return ids
}
