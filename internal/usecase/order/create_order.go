package order

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

type DetailInput struct {
	Date     time.Time
	StartAt  time.Time
	EndAt    time.Time
	Position string
	Count    int
	Wager    int64
	Gender   *string
}

type CreateOrderInput struct {
	ActorID   uuid.UUID
	ActorRole valueobject.Role
	About     string
	Address   string
	Details   []DetailInput
}

// CreateOrderUseCase создаёт заказ вместе с позициями.
// Заказ от заказчика ждёт подтверждения администратором; заказ,
// созданный администратором с профилем заказчика, публикуется сразу.
type CreateOrderUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewCreateOrderUseCase(txManager repository.TxManager, notifier notification.Notifier) *CreateOrderUseCase {
	return &CreateOrderUseCase{txManager: txManager, notifier: notifier}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if len(input.Details) == 0 {
		return nil, apperror.ErrMissingOrderDetails
	}

	var (
		order      *entity.Order
		recipients []uuid.UUID
	)

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		contractorID := input.ActorID
		var adminID *uuid.UUID

		if input.ActorRole == valueobject.RoleAdmin {
			admin, err := tx.UserQueries().GetAdmin(ctx, input.ActorID)
			if err != nil {
				return err
			}
			if admin == nil || !admin.IsContractor() {
				return apperror.ErrPermissionDenied
			}
			contractorID = *admin.ContractorID
			adminID = &input.ActorID
		} else if input.ActorRole != valueobject.RoleContractor {
			return apperror.ErrPermissionDenied
		}

		var err error
		order, err = entity.NewOrder(contractorID, input.About, input.Address)
		if err != nil {
			return err
		}

		for _, det := range input.Details {
			position, err := valueobject.NewPosition(det.Position)
			if err != nil {
				return err
			}
			var gender *valueobject.Gender
			if det.Gender != nil {
				g, err := valueobject.NewGender(*det.Gender)
				if err != nil {
					return err
				}
				gender = &g
			}
			detail, err := entity.NewOrderDetail(order.ID, det.Date, det.StartAt, det.EndAt, position, det.Count, det.Wager, gender)
			if err != nil {
				return err
			}
			order.Details = append(order.Details, *detail)
		}

		if adminID != nil {
			order.AdminID = adminID
			order.Status = valueobject.OrderStatusOpen
		}

		if _, err := tx.OrderCommands().CreateOrder(ctx, order); err != nil {
			return err
		}
		if _, err := tx.OrderCommands().CreateDetails(ctx, order.Details); err != nil {
			return err
		}

		recipients, err = uc.collectRecipients(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	if order.IsCreated() {
		uc.notifier.OrderCreated(ctx, order, recipients)
	} else {
		uc.notifier.OrderPublished(ctx, order, recipients)
	}

	return order, nil
}

// collectRecipients выбирает получателей уведомления: для нового заказа —
// администраторов, для опубликованного — подходящих по полу исполнителей.
func (uc *CreateOrderUseCase) collectRecipients(ctx context.Context, tx repository.Tx, order *entity.Order) ([]uuid.UUID, error) {
	registered := valueobject.UserStatusRegistered
	filter := repository.UserFilter{Status: &registered}

	if order.IsCreated() {
		role := valueobject.RoleAdmin
		filter.Role = &role
	} else {
		role := valueobject.RoleContractee
		filter.Role = &role
		filter.Gender = order.RequiredGender()
	}

	users, err := tx.UserQueries().FilterUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
