package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

// Reply связывает исполнителя с позицией заказа.
// Идентичность отклика составная: (ContracteeID, DetailID).
type Reply struct {
	ContracteeID uuid.UUID
	DetailID     uuid.UUID
	Wager        int64
	Status       valueobject.ReplyStatus
	Dropped      bool
	PaidAt       *time.Time
	CreatedAt    time.Time
}

// NewReply создаёт отклик с выплатой, рассчитанной от ставки позиции.
func NewReply(contracteeID uuid.UUID, detail *OrderDetail) *Reply {
	return &Reply{
		ContracteeID: contracteeID,
		DetailID:     detail.ID,
		Wager:        valueobject.CalculatePay(detail.Wager),
		Status:       valueobject.ReplyStatusCreated,
		CreatedAt:    time.Now(),
	}
}

func (r *Reply) IsCreated() bool {
	return r.Status == valueobject.ReplyStatusCreated
}

func (r *Reply) IsAccepted() bool {
	return r.Status == valueobject.ReplyStatusAccepted
}

func (r *Reply) IsPaid() bool {
	return r.Status == valueobject.ReplyStatusPaid
}

func (r *Reply) IsDropped() bool {
	return r.Dropped
}

// CanBeApproved охватывает и подтверждение, и отклонение отклика:
// оба перехода допустимы только из статуса created. Снятый отклик
// решению не подлежит.
func (r *Reply) CanBeApproved() bool {
	return r.IsCreated() && !r.Dropped
}

// CanBeDropped: системой снимаются только неподтверждённые отклики.
func (r *Reply) CanBeDropped() bool {
	return r.IsCreated()
}

// IsFutureOrOngoing: подтверждённый отклик, смена которого ещё не закончилась.
func (r *Reply) IsFutureOrOngoing(detail *OrderDetail, now time.Time) bool {
	return !r.Dropped && r.IsAccepted() && detail.EndTime().After(now)
}

// IsFuture: подтверждённый отклик, смена которого ещё не началась.
func (r *Reply) IsFuture(detail *OrderDetail, now time.Time) bool {
	return r.IsFutureOrOngoing(detail, now) && detail.StartTime().After(now)
}

// CompleteReply — агрегат отклика со связанными позицией и заказом,
// загружаемый одним запросом для принятия решений о подтверждении.
type CompleteReply struct {
	Reply  Reply
	Detail OrderDetail
	Order  Order
}
