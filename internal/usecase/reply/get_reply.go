package reply

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// GetReplyUseCase возвращает отклик с позицией и заказом.
// Видят его исполнитель-автор, заказчик-владелец и куратор заказа.
type GetReplyUseCase struct {
	replyRepo repository.ReplyQueryRepository
}

func NewGetReplyUseCase(replyRepo repository.ReplyQueryRepository) *GetReplyUseCase {
	return &GetReplyUseCase{replyRepo: replyRepo}
}

func (uc *GetReplyUseCase) Execute(ctx context.Context, detailID, contracteeID, actorID uuid.UUID, actorRole valueobject.Role) (*entity.CompleteReply, error) {
	complete, err := uc.replyRepo.GetCompleteReply(ctx, contracteeID, detailID)
	if err != nil {
		return nil, err
	}
	if complete == nil {
		return nil, apperror.ErrReplyNotFound
	}

	switch actorRole {
	case valueobject.RoleContractee:
		if contracteeID != actorID {
			return nil, apperror.ErrForbidden
		}
	case valueobject.RoleContractor:
		if !complete.Order.IsOwnedBy(actorID) {
			return nil, apperror.ErrForbidden
		}
	case valueobject.RoleAdmin:
	default:
		return nil, apperror.ErrPermissionDenied
	}

	return complete, nil
}

type FilterRepliesInput struct {
	ActorID   uuid.UUID
	ActorRole valueobject.Role
	OrderID   *uuid.UUID
	DetailID  *uuid.UUID
	Date      *time.Time
	Status    *valueobject.ReplyStatus
	Limit     int
	Offset    int
}

// FilterRepliesUseCase выбирает отклики с привязкой фильтра к роли:
// исполнитель видит только свои, заказчик — отклики на свои заказы.
type FilterRepliesUseCase struct {
	replyRepo repository.ReplyQueryRepository
	orderRepo repository.OrderQueryRepository
}

func NewFilterRepliesUseCase(replyRepo repository.ReplyQueryRepository, orderRepo repository.OrderQueryRepository) *FilterRepliesUseCase {
	return &FilterRepliesUseCase{replyRepo: replyRepo, orderRepo: orderRepo}
}

func (uc *FilterRepliesUseCase) Execute(ctx context.Context, input FilterRepliesInput) ([]entity.CompleteReply, error) {
	filter := repository.ReplyFilter{
		OrderID:  input.OrderID,
		DetailID: input.DetailID,
		Date:     input.Date,
		Status:   input.Status,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}

	switch input.ActorRole {
	case valueobject.RoleContractee:
		filter.ContracteeID = &input.ActorID
	case valueobject.RoleContractor:
		if input.OrderID == nil {
			return nil, apperror.ErrInvalidInput
		}
		order, err := uc.orderRepo.GetOrder(ctx, *input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.ErrOrderNotFound
		}
		if !order.IsOwnedBy(input.ActorID) {
			return nil, apperror.ErrForbidden
		}
	case valueobject.RoleAdmin:
	default:
		return nil, apperror.ErrPermissionDenied
	}

	return uc.replyRepo.FilterCompleteReplies(ctx, filter)
}
