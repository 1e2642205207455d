package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// GetOrderUseCase возвращает заказ с позициями с учётом видимости по роли:
// заказчик видит свои заказы, администратор — любые, исполнитель —
// доступные на витрине и те, на которые он откликался.
type GetOrderUseCase struct {
	orderRepo repository.OrderQueryRepository
	replyRepo repository.ReplyQueryRepository
}

func NewGetOrderUseCase(orderRepo repository.OrderQueryRepository, replyRepo repository.ReplyQueryRepository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo, replyRepo: replyRepo}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID, actorID uuid.UUID, actorRole valueobject.Role) (*entity.Order, error) {
	order, err := uc.orderRepo.GetOrderWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.ErrOrderNotFound
	}

	switch actorRole {
	case valueobject.RoleAdmin:
		return order, nil
	case valueobject.RoleContractor:
		if !order.IsOwnedBy(actorID) {
			return nil, apperror.ErrForbidden
		}
		return order, nil
	case valueobject.RoleContractee:
		if order.IsAvailable() {
			return order, nil
		}
		replied, err := uc.replyRepo.HasReply(ctx, repository.ReplyFilter{
			OrderID:        &orderID,
			ContracteeID:   &actorID,
			IncludeDropped: true,
		})
		if err != nil {
			return nil, err
		}
		if !replied {
			return nil, apperror.ErrForbidden
		}
		return order, nil
	}
	return nil, apperror.ErrPermissionDenied
}

type FilterOrdersInput struct {
	ActorID   uuid.UUID
	ActorRole valueobject.Role
	Status    *valueobject.OrderStatus
	// Mine для исполнителя выбирает заказы с его откликами вместо витрины,
	// для администратора — заказы под его кураторством.
	Mine       bool
	Unassigned bool
	Limit      int
	Offset     int
}

// FilterOrdersUseCase выбирает заказы с привязкой фильтра к роли.
type FilterOrdersUseCase struct {
	orderRepo repository.OrderQueryRepository
}

func NewFilterOrdersUseCase(orderRepo repository.OrderQueryRepository) *FilterOrdersUseCase {
	return &FilterOrdersUseCase{orderRepo: orderRepo}
}

func (uc *FilterOrdersUseCase) Execute(ctx context.Context, input FilterOrdersInput) ([]entity.Order, error) {
	filter := repository.OrderFilter{
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	switch input.ActorRole {
	case valueobject.RoleContractor:
		filter.ContractorID = &input.ActorID
	case valueobject.RoleAdmin:
		if input.Mine {
			filter.AdminID = &input.ActorID
		}
		filter.Unassigned = input.Unassigned
	case valueobject.RoleContractee:
		if input.Mine {
			filter.ContracteeID = &input.ActorID
		} else {
			open := valueobject.OrderStatusOpen
			filter.Status = &open
		}
	default:
		return nil, apperror.ErrPermissionDenied
	}

	return uc.orderRepo.FilterOrders(ctx, filter)
}
