package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// Минимальный запас до начала смены, после которого отклики закрываются,
// и максимальная длительность смены.
const (
	DefaultReplyCutoff = 2 * time.Hour
	MaxShiftLength     = 20 * time.Hour
)

// OrderDetail описывает позицию заказа: дату, временное окно смены,
// роль, количество мест и ставку. После создания позиция не редактируется.
type OrderDetail struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	Date     time.Time
	StartAt  time.Time
	EndAt    time.Time
	Position valueobject.Position
	Count    int
	Wager    int64
	Gender   *valueobject.Gender
}

func NewOrderDetail(orderID uuid.UUID, date, startAt, endAt time.Time, position valueobject.Position, count int, wager int64, gender *valueobject.Gender) (*OrderDetail, error) {
	if !position.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректная позиция")
	}
	if count <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "количество мест должно быть положительным")
	}
	if wager <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "ставка должна быть положительной")
	}
	if gender != nil && !gender.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректное значение пола")
	}

	det := &OrderDetail{
		ID:       uuid.New(),
		OrderID:  orderID,
		Date:     date,
		StartAt:  startAt,
		EndAt:    endAt,
		Position: position,
		Count:    count,
		Wager:    wager,
		Gender:   gender,
	}

	if det.EndTime().Sub(det.StartTime()) > MaxShiftLength {
		return nil, apperror.New(apperror.ErrCodeValidation, "длительность смены превышает допустимую")
	}

	return det, nil
}

// StartTime собирает дату и время начала смены в один момент.
func (d *OrderDetail) StartTime() time.Time {
	return combine(d.Date, d.StartAt)
}

// EndTime собирает момент конца смены. Если конец раньше начала,
// смена ночная и заканчивается на следующий день.
func (d *OrderDetail) EndTime() time.Time {
	date := d.Date
	if clockOf(d.EndAt) < clockOf(d.StartAt) {
		date = date.AddDate(0, 0, 1)
	}
	return combine(date, d.EndAt)
}

// IsSuitableFor проверяет допуск исполнителя по полу:
// позиция без фильтра доступна всем.
func (d *OrderDetail) IsSuitableFor(gender valueobject.Gender) bool {
	return d.Gender == nil || *d.Gender == gender
}

// AcceptsRepliesAt сообщает, можно ли ещё откликаться на позицию:
// до начала смены должен оставаться запас не меньше cutoff.
func (d *OrderDetail) AcceptsRepliesAt(now time.Time, cutoff time.Duration) bool {
	return d.StartTime().Add(-cutoff).After(now)
}

// SameDate сравнивает календарные даты позиций без учёта времени.
func (d *OrderDetail) SameDate(other time.Time) bool {
	y1, m1, d1 := d.Date.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func combine(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		date.Location(),
	)
}

func clockOf(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
