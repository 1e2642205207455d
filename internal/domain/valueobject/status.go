package valueobject

import "github.com/staffhub/staffing-backend/internal/pkg/apperror"

type OrderStatus string

const (
	OrderStatusCreated     OrderStatus = "created"
	OrderStatusOpen        OrderStatus = "open"
	OrderStatusClosed      OrderStatus = "closed"
	OrderStatusActive      OrderStatus = "active"
	OrderStatusDisapproved OrderStatus = "disapproved"
	OrderStatusCancelled   OrderStatus = "cancelled"
	OrderStatusFulfilled   OrderStatus = "fulfilled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusOpen, OrderStatusClosed, OrderStatusActive,
		OrderStatusDisapproved, OrderStatusCancelled, OrderStatusFulfilled:
		return true
	}
	return false
}

// CanTransitionTo проверяет допустимость перехода статуса заказа.
// Статусы disapproved, cancelled и fulfilled терминальные.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusCreated:     {OrderStatusOpen, OrderStatusDisapproved, OrderStatusCancelled},
		OrderStatusOpen:        {OrderStatusActive, OrderStatusClosed, OrderStatusCancelled},
		OrderStatusClosed:      {OrderStatusOpen, OrderStatusActive, OrderStatusCancelled},
		OrderStatusActive:      {OrderStatusFulfilled, OrderStatusCancelled},
		OrderStatusDisapproved: {},
		OrderStatusCancelled:   {},
		OrderStatusFulfilled:   {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewOrderStatus(status string) (OrderStatus, error) {
	s := OrderStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заказа")
	}
	return s, nil
}

type ReplyStatus string

const (
	ReplyStatusCreated     ReplyStatus = "created"
	ReplyStatusAccepted    ReplyStatus = "accepted"
	ReplyStatusDisapproved ReplyStatus = "disapproved"
	ReplyStatusPaid        ReplyStatus = "paid"
)

func (s ReplyStatus) IsValid() bool {
	switch s {
	case ReplyStatusCreated, ReplyStatusAccepted, ReplyStatusDisapproved, ReplyStatusPaid:
		return true
	}
	return false
}

func (s ReplyStatus) CanTransitionTo(newStatus ReplyStatus) bool {
	transitions := map[ReplyStatus][]ReplyStatus{
		ReplyStatusCreated:     {ReplyStatusAccepted, ReplyStatusDisapproved},
		ReplyStatusAccepted:    {ReplyStatusPaid},
		ReplyStatusDisapproved: {},
		ReplyStatusPaid:        {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewReplyStatus(status string) (ReplyStatus, error) {
	s := ReplyStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус отклика")
	}
	return s, nil
}

type UserStatus string

const (
	UserStatusCreated     UserStatus = "created"
	UserStatusPending     UserStatus = "pending"
	UserStatusRegistered  UserStatus = "registered"
	UserStatusDisapproved UserStatus = "disapproved"
	UserStatusDropped     UserStatus = "dropped"
	UserStatusBanned      UserStatus = "banned"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusCreated, UserStatusPending, UserStatusRegistered,
		UserStatusDisapproved, UserStatusDropped, UserStatusBanned:
		return true
	}
	return false
}

func NewUserStatus(status string) (UserStatus, error) {
	s := UserStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус пользователя")
	}
	return s, nil
}
