package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

// ReplyFilter задаёт условия выборки откликов. Сброшенные отклики
// по умолчанию исключаются; IncludeDropped возвращает и их.
// AnyStatus действует только для DropReplies: снимаются отклики
// в любом статусе, а не только необработанные.
type ReplyFilter struct {
	OrderID        *uuid.UUID
	DetailID       *uuid.UUID
	ContracteeID   *uuid.UUID
	Date           *time.Time
	Status         *valueobject.ReplyStatus
	IncludeDropped bool
	AnyStatus      bool
	Limit          int
	Offset         int
}

// ReplyQueryRepository — контракт чтения откликов и свободных мест.
type ReplyQueryRepository interface {
	GetReply(ctx context.Context, contracteeID, detailID uuid.UUID) (*entity.Reply, error)
	GetCompleteReply(ctx context.Context, contracteeID, detailID uuid.UUID) (*entity.CompleteReply, error)
	FilterCompleteReplies(ctx context.Context, filter ReplyFilter) ([]entity.CompleteReply, error)
	HasReply(ctx context.Context, filter ReplyFilter) (bool, error)

	// DetailAvailability возвращает остаток мест по позиции,
	// OrderAvailability — остатки по всем позициям заказа.
	// Внутри транзакции строки позиций блокируются до её конца.
	DetailAvailability(ctx context.Context, detailID uuid.UUID) (*entity.DetailAvailability, error)
	OrderAvailability(ctx context.Context, orderID uuid.UUID) ([]entity.DetailAvailability, error)
}

// ReplyCommandRepository — контракт записи откликов.
type ReplyCommandRepository interface {
	CreateReply(ctx context.Context, reply *entity.Reply) (*entity.Reply, error)
	SetReplyStatus(ctx context.Context, contracteeID, detailID uuid.UUID, status valueobject.ReplyStatus) (*entity.Reply, error)

	// DropReplies помечает сброшенными все несогласованные отклики,
	// попавшие под фильтр, и возвращает их. С AnyStatus снимаются
	// отклики в любом статусе (отмена заказа).
	DropReplies(ctx context.Context, filter ReplyFilter) ([]entity.Reply, error)
}
