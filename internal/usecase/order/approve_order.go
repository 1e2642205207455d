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

// ApproveOrderUseCase подтверждает заказ и публикует его исполнителям.
// Администратор без кураторства закрепляется за заказом при подтверждении.
type ApproveOrderUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewApproveOrderUseCase(txManager repository.TxManager, notifier notification.Notifier) *ApproveOrderUseCase {
	return &ApproveOrderUseCase{txManager: txManager, notifier: notifier}
}

func (uc *ApproveOrderUseCase) Execute(ctx context.Context, orderID, adminID uuid.UUID) (*entity.Order, error) {
	var (
		order         *entity.Order
		contracteeIDs []uuid.UUID
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := tx.OrderQueries().GetOrderWithDetails(ctx, orderID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.ErrOrderNotFound
		}
		if current.HasSupervisor() && !current.IsSupervisedBy(adminID) {
			return apperror.ErrForbidden
		}
		if !current.CanBeApproved() {
			return apperror.ErrOrderActionNotAllowed
		}

		if !current.HasSupervisor() {
			if _, err := tx.OrderCommands().SetOrderAdmin(ctx, orderID, adminID); err != nil {
				return err
			}
		}

		order, err = tx.OrderCommands().SetOrderStatus(ctx, orderID, valueobject.OrderStatusOpen)
		if err != nil {
			return err
		}
		order.Details = current.Details

		contracteeIDs, err = eligibleContractees(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.OrderApproved(ctx, order, order.ContractorID)
	uc.notifier.OrderPublished(ctx, order, contracteeIDs)

	return order, nil
}

// DisapproveOrderUseCase отклоняет заказ. Правила доступа те же,
// что и при подтверждении.
type DisapproveOrderUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewDisapproveOrderUseCase(txManager repository.TxManager, notifier notification.Notifier) *DisapproveOrderUseCase {
	return &DisapproveOrderUseCase{txManager: txManager, notifier: notifier}
}

func (uc *DisapproveOrderUseCase) Execute(ctx context.Context, orderID, adminID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := tx.OrderQueries().GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.ErrOrderNotFound
		}
		if current.HasSupervisor() && !current.IsSupervisedBy(adminID) {
			return apperror.ErrForbidden
		}
		if !current.CanBeApproved() {
			return apperror.ErrOrderActionNotAllowed
		}

		if !current.HasSupervisor() {
			if _, err := tx.OrderCommands().SetOrderAdmin(ctx, orderID, adminID); err != nil {
				return err
			}
		}

		order, err = tx.OrderCommands().SetOrderStatus(ctx, orderID, valueobject.OrderStatusDisapproved)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.OrderDisapproved(ctx, order, order.ContractorID)

	return order, nil
}

// eligibleContractees выбирает зарегистрированных исполнителей,
// подходящих под фильтр пола заказа.
func eligibleContractees(ctx context.Context, tx repository.Tx, order *entity.Order) ([]uuid.UUID, error) {
	registered := valueobject.UserStatusRegistered
	role := valueobject.RoleContractee
	users, err := tx.UserQueries().FilterUsers(ctx, repository.UserFilter{
		Role:   &role,
		Status: &registered,
		Gender: order.RequiredGender(),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
