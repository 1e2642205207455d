package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/notification"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// TakeOrderUseCase закрепляет администратора куратором заказа.
type TakeOrderUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewTakeOrderUseCase(txManager repository.TxManager, notifier notification.Notifier) *TakeOrderUseCase {
	return &TakeOrderUseCase{txManager: txManager, notifier: notifier}
}

func (uc *TakeOrderUseCase) Execute(ctx context.Context, orderID, adminID uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := tx.OrderQueries().GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.ErrOrderNotFound
		}
		if !current.CanBeAssigned() {
			return apperror.ErrOrderAssignmentNotAllowed
		}

		order, err = tx.OrderCommands().SetOrderAdmin(ctx, orderID, adminID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.AdminAssigned(ctx, order, order.ContractorID)

	return order, nil
}
