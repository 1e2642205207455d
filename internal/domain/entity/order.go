package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// Order описывает заказ на персонал, размещённый заказчиком.
// Статус меняется только через переходы, разрешённые предикатами ниже.
type Order struct {
	ID           uuid.UUID
	ContractorID uuid.UUID
	AdminID      *uuid.UUID
	About        string
	Address      string
	Status       valueobject.OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Details []OrderDetail
}

func NewOrder(contractorID uuid.UUID, about, address string) (*Order, error) {
	if about == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "описание заказа обязательно")
	}
	if address == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "адрес заказа обязателен")
	}

	return &Order{
		ID:           uuid.New(),
		ContractorID: contractorID,
		About:        about,
		Address:      address,
		Status:       valueobject.OrderStatusCreated,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

func (o *Order) IsOwnedBy(contractorID uuid.UUID) bool {
	return o.ContractorID == contractorID
}

func (o *Order) HasSupervisor() bool {
	return o.AdminID != nil
}

func (o *Order) IsSupervisedBy(adminID uuid.UUID) bool {
	return o.AdminID != nil && *o.AdminID == adminID
}

func (o *Order) IsCreated() bool {
	return o.Status == valueobject.OrderStatusCreated
}

func (o *Order) IsOpen() bool {
	return o.Status == valueobject.OrderStatusOpen
}

func (o *Order) IsClosed() bool {
	return o.Status == valueobject.OrderStatusClosed
}

func (o *Order) IsActive() bool {
	return o.Status == valueobject.OrderStatusActive
}

func (o *Order) IsCancelled() bool {
	return o.Status == valueobject.OrderStatusCancelled
}

func (o *Order) IsFulfilled() bool {
	return o.Status == valueobject.OrderStatusFulfilled
}

// IsAvailable определяет видимость заказа для исполнителей на витрине.
func (o *Order) IsAvailable() bool {
	return o.IsOpen()
}

// CanBeAssigned разрешает взять заказ на кураторство: только свежесозданный
// заказ без куратора.
func (o *Order) CanBeAssigned() bool {
	return !o.HasSupervisor() && o.IsCreated()
}

// CanBeApproved охватывает и подтверждение (approve), и отклонение (disapprove):
// оба перехода допустимы только из статуса created.
func (o *Order) CanBeApproved() bool {
	return o.IsCreated()
}

func (o *Order) CanBeCancelled() bool {
	return !o.IsFulfilled() && !o.IsCancelled()
}

func (o *Order) CanBeClosed() bool {
	return o.IsOpen()
}

func (o *Order) CanBeOpened() bool {
	return o.IsClosed()
}

// CanBeSetActive разрешает перевод в работу из open или closed.
func (o *Order) CanBeSetActive() bool {
	return o.IsOpen() || o.IsClosed()
}

func (o *Order) CanBeFulfilled() bool {
	return o.IsActive()
}

// CanHaveReplies: отклики и их подтверждение допустимы только пока заказ открыт.
func (o *Order) CanHaveReplies() bool {
	return o.IsOpen()
}

// RequiredGender вычисляет фильтр пола для рассылки о новом заказе.
// Если хотя бы две позиции расходятся в требуемом поле (включая случай,
// когда одна указывает пол, а другая нет), фильтр не применяется:
// рассылка уходит всем зарегистрированным исполнителям.
func (o *Order) RequiredGender() *valueobject.Gender {
	if len(o.Details) == 0 {
		return nil
	}

	gender := o.Details[0].Gender
	for _, det := range o.Details {
		if !genderEqual(gender, det.Gender) {
			return nil
		}
	}
	return gender
}

func genderEqual(a, b *valueobject.Gender) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
