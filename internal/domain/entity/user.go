package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

// User — учётная запись с ролью и статусом регистрации.
// Профильные данные ролей лежат в Contractor/Contractee/Admin.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         valueobject.Role
	Status       valueobject.UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == valueobject.RoleAdmin
}

func (u *User) IsContractor() bool {
	return u.Role == valueobject.RoleContractor
}

func (u *User) IsContractee() bool {
	return u.Role == valueobject.RoleContractee
}

func (u *User) IsPending() bool {
	return u.Status == valueobject.UserStatusPending
}

func (u *User) IsRegistered() bool {
	return u.Status == valueobject.UserStatusRegistered
}

func (u *User) IsDropped() bool {
	return u.Status == valueobject.UserStatusDropped
}

func (u *User) IsBanned() bool {
	return u.Status == valueobject.UserStatusBanned
}

func (u *User) CanBeApproved() bool {
	return u.IsPending()
}

func (u *User) CanBeDisapproved() bool {
	return u.IsPending()
}

func (u *User) CanBeDropped() bool {
	return !u.IsDropped() && !u.IsAdmin()
}

func (u *User) CanBeBanned() bool {
	return !u.IsBanned() && !u.IsAdmin()
}

// IsEditableByOthers: профили администраторов меняет только их владелец.
func (u *User) IsEditableByOthers() bool {
	return !u.IsAdmin()
}

// IsAllowedToRegister: повторная регистрация разрешена только после
// сброса или отказа.
func (u *User) IsAllowedToRegister() bool {
	return u.Status == valueobject.UserStatusDropped || u.Status == valueobject.UserStatusDisapproved
}

// CanStatusBeChangedTo проверяет допустимость смены статуса пользователя
// сторонним администратором.
func (u *User) CanStatusBeChangedTo(status valueobject.UserStatus) bool {
	if !u.IsEditableByOthers() {
		return false
	}
	switch status {
	case valueobject.UserStatusRegistered:
		return u.CanBeApproved()
	case valueobject.UserStatusDisapproved:
		return u.CanBeDisapproved()
	case valueobject.UserStatusDropped:
		return u.CanBeDropped()
	case valueobject.UserStatusBanned:
		return u.CanBeBanned()
	}
	return false
}

// Contractor — профиль заказчика.
type Contractor struct {
	UserID  uuid.UUID
	Company string
	About   string
}

// Contractee — профиль исполнителя. Пол участвует в проверке допуска
// на позиции с фильтром.
type Contractee struct {
	UserID    uuid.UUID
	Gender    valueobject.Gender
	BirthDate *time.Time
	City      string
}

// Admin — профиль администратора. ContractorID заполнен, если администратор
// одновременно держит профиль заказчика и может создавать заказы от его имени.
type Admin struct {
	UserID       uuid.UUID
	ContractorID *uuid.UUID
}

func (a *Admin) IsContractor() bool {
	return a.ContractorID != nil
}
