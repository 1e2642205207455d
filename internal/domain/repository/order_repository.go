package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

// OrderFilter задаёт условия выборки заказов. Нулевые поля не участвуют в фильтре.
type OrderFilter struct {
	Status       *valueobject.OrderStatus
	ContractorID *uuid.UUID
	AdminID      *uuid.UUID
	ContracteeID *uuid.UUID
	Unassigned   bool
	Limit        int
	Offset       int
}

// OrderQueryRepository — контракт чтения заказов и позиций.
// Отсутствие записи — это nil без ошибки, не исключение.
type OrderQueryRepository interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetOrderWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetOrderForDetail(ctx context.Context, detailID uuid.UUID) (*entity.Order, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*entity.OrderDetail, error)
	ListDetails(ctx context.Context, orderID uuid.UUID) ([]entity.OrderDetail, error)
	FilterOrders(ctx context.Context, filter OrderFilter) ([]entity.Order, error)
}

// OrderCommandRepository — контракт записи заказов.
// Каждый метод возвращает состояние записи после применения.
type OrderCommandRepository interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	UpdateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	SetOrderStatus(ctx context.Context, id uuid.UUID, status valueobject.OrderStatus) (*entity.Order, error)
	SetOrderAdmin(ctx context.Context, id uuid.UUID, adminID uuid.UUID) (*entity.Order, error)
	CreateDetails(ctx context.Context, details []entity.OrderDetail) ([]entity.OrderDetail, error)
}
