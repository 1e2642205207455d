package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/notification"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

type ChangeOrderStatusInput struct {
	OrderID   uuid.UUID
	ActorID   uuid.UUID
	ActorRole valueobject.Role
	Status    valueobject.OrderStatus
}

// ChangeOrderStatusUseCase выполняет переходы статуса заказа по запросу
// заказчика или администратора. Права на каждый целевой статус свои;
// сценарии отличаются только проверкой доступа и побочными действиями,
// поэтому собраны в один сценарий с диспетчеризацией по статусу.
type ChangeOrderStatusUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewChangeOrderStatusUseCase(txManager repository.TxManager, notifier notification.Notifier) *ChangeOrderStatusUseCase {
	return &ChangeOrderStatusUseCase{txManager: txManager, notifier: notifier}
}

func (uc *ChangeOrderStatusUseCase) Execute(ctx context.Context, input ChangeOrderStatusInput) (*entity.Order, error) {
	switch input.Status {
	case valueobject.OrderStatusCancelled:
		return uc.cancel(ctx, input)
	case valueobject.OrderStatusClosed:
		return uc.close(ctx, input)
	case valueobject.OrderStatusOpen:
		return uc.open(ctx, input)
	case valueobject.OrderStatusActive:
		return uc.setActive(ctx, input)
	case valueobject.OrderStatusFulfilled:
		return uc.fulfill(ctx, input)
	}
	return nil, apperror.ErrOrderStatusChangeNotAllowed
}

// cancel доступен заказчику-владельцу всегда, администратору — пока заказ
// не взят другим куратором. Отмена после публикации снимает все отклики
// заказа независимо от их статуса.
func (uc *ChangeOrderStatusUseCase) cancel(ctx context.Context, input ChangeOrderStatusInput) (*entity.Order, error) {
	var (
		order    *entity.Order
		affected []uuid.UUID
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := tx.OrderQueries().GetOrder(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.ErrOrderNotFound
		}

		switch input.ActorRole {
		case valueobject.RoleContractor:
			if !current.IsOwnedBy(input.ActorID) {
				return apperror.ErrForbidden
			}
		case valueobject.RoleAdmin:
			if current.HasSupervisor() && !current.IsSupervisedBy(input.ActorID) {
				return apperror.ErrForbidden
			}
		default:
			return apperror.ErrPermissionDenied
		}

		if !current.CanBeCancelled() {
			return apperror.ErrOrderStatusChangeNotAllowed
		}

		if !current.IsCreated() {
			affected, err = replyContractees(ctx, tx, input.OrderID)
			if err != nil {
				return err
			}
			if _, err := tx.ReplyCommands().DropReplies(ctx, repository.ReplyFilter{OrderID: &input.OrderID, AnyStatus: true}); err != nil {
				return err
			}
		}

		order, err = tx.OrderCommands().SetOrderStatus(ctx, input.OrderID, valueobject.OrderStatusCancelled)
		return err
	})
	if err != nil {
		return nil, err
	}

	affected = appendCounterparty(affected, order, input.ActorID)
	uc.notifier.OrderCancelled(ctx, order, affected)

	return order, nil
}

// close и open доступны только куратору заказа. Закрытие не трогает
// отклики: заказ можно открыть снова, и поданные отклики останутся в силе.
func (uc *ChangeOrderStatusUseCase) close(ctx context.Context, input ChangeOrderStatusInput) (*entity.Order, error) {
	var order *entity.Order

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := uc.supervisedOrder(ctx, tx, input)
		if err != nil {
			return err
		}
		if !current.CanBeClosed() {
			return apperror.ErrOrderStatusChangeNotAllowed
		}

		order, err = tx.OrderCommands().SetOrderStatus(ctx, input.OrderID, valueobject.OrderStatusClosed)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.OrderClosed(ctx, order, order.ContractorID)

	return order, nil
}

func (uc *ChangeOrderStatusUseCase) open(ctx context.Context, input ChangeOrderStatusInput) (*entity.Order, error) {
	var order *entity.Order

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := uc.supervisedOrder(ctx, tx, input)
		if err != nil {
			return err
		}
		if !current.CanBeOpened() {
			return apperror.ErrOrderStatusChangeNotAllowed
		}

		order, err = tx.OrderCommands().SetOrderStatus(ctx, input.OrderID, valueobject.OrderStatusOpen)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.OrderOpened(ctx, order, order.ContractorID)

	return order, nil
}

// setActive доступен куратору и заказчику-владельцу. Перевод в работу
// требует хотя бы одного подтверждённого отклика и снимает оставшиеся
// неподтверждённые.
func (uc *ChangeOrderStatusUseCase) setActive(ctx context.Context, input ChangeOrderStatusInput) (*entity.Order, error) {
	var (
		order    *entity.Order
		accepted []uuid.UUID
		dropped  []uuid.UUID
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := tx.OrderQueries().GetOrder(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.ErrOrderNotFound
		}

		switch input.ActorRole {
		case valueobject.RoleContractor:
			if !current.IsOwnedBy(input.ActorID) {
				return apperror.ErrForbidden
			}
		case valueobject.RoleAdmin:
			if !current.IsSupervisedBy(input.ActorID) {
				return apperror.ErrForbidden
			}
		default:
			return apperror.ErrPermissionDenied
		}

		if !current.CanBeSetActive() {
			return apperror.ErrOrderStatusChangeNotAllowed
		}

		accepted, err = acceptedContractees(ctx, tx, input.OrderID)
		if err != nil {
			return err
		}
		if len(accepted) == 0 {
			return apperror.ErrOrderActionNotAllowed
		}

		replies, err := tx.ReplyCommands().DropReplies(ctx, repository.ReplyFilter{OrderID: &input.OrderID})
		if err != nil {
			return err
		}
		dropped = contracteesOf(replies)

		order, err = tx.OrderCommands().SetOrderStatus(ctx, input.OrderID, valueobject.OrderStatusActive)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.RepliesDropped(ctx, order, dropped)
	uc.notifier.OrderSetActive(ctx, order, append(accepted, order.ContractorID))

	return order, nil
}

// fulfill доступен только куратору заказа.
func (uc *ChangeOrderStatusUseCase) fulfill(ctx context.Context, input ChangeOrderStatusInput) (*entity.Order, error) {
	var (
		order    *entity.Order
		accepted []uuid.UUID
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := uc.supervisedOrder(ctx, tx, input)
		if err != nil {
			return err
		}
		if !current.CanBeFulfilled() {
			return apperror.ErrOrderStatusChangeNotAllowed
		}

		accepted, err = acceptedContractees(ctx, tx, input.OrderID)
		if err != nil {
			return err
		}

		order, err = tx.OrderCommands().SetOrderStatus(ctx, input.OrderID, valueobject.OrderStatusFulfilled)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.OrderFulfilled(ctx, order, append(accepted, order.ContractorID))

	return order, nil
}

// supervisedOrder загружает заказ и допускает к нему только куратора.
func (uc *ChangeOrderStatusUseCase) supervisedOrder(ctx context.Context, tx repository.Tx, input ChangeOrderStatusInput) (*entity.Order, error) {
	if input.ActorRole != valueobject.RoleAdmin {
		return nil, apperror.ErrPermissionDenied
	}

	order, err := tx.OrderQueries().GetOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}
	if !order.IsSupervisedBy(input.ActorID) {
		return nil, apperror.ErrForbidden
	}
	return order, nil
}

// replyContractees возвращает исполнителей со снимаемыми откликами на заказ.
func replyContractees(ctx context.Context, tx repository.Tx, orderID uuid.UUID) ([]uuid.UUID, error) {
	replies, err := tx.ReplyQueries().FilterCompleteReplies(ctx, repository.ReplyFilter{OrderID: &orderID})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(replies))
	for _, r := range replies {
		ids = append(ids, r.Reply.ContracteeID)
	}
	return ids, nil
}

// acceptedContractees возвращает исполнителей с подтверждёнными откликами.
func acceptedContractees(ctx context.Context, tx repository.Tx, orderID uuid.UUID) ([]uuid.UUID, error) {
	status := valueobject.ReplyStatusAccepted
	replies, err := tx.ReplyQueries().FilterCompleteReplies(ctx, repository.ReplyFilter{OrderID: &orderID, Status: &status})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(replies))
	for _, r := range replies {
		ids = append(ids, r.Reply.ContracteeID)
	}
	return ids, nil
}

func contracteesOf(replies []entity.Reply) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(replies))
	for _, r := range replies {
		ids = append(ids, r.ContracteeID)
	}
	return ids
}

// appendCounterparty добавляет к получателям вторую сторону заказа,
// если действие выполнила не она.
func appendCounterparty(ids []uuid.UUID, order *entity.Order, actorID uuid.UUID) []uuid.UUID {
	if order.ContractorID != actorID {
		ids = append(ids, order.ContractorID)
	}
	if order.AdminID != nil && *order.AdminID != actorID {
		ids = append(ids, *order.AdminID)
	}
	return ids
}
