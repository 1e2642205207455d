package valueobject

import "github.com/staffhub/staffing-backend/internal/pkg/apperror"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleContractor Role = "contractor"
	RoleContractee Role = "contractee"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleContractor, RoleContractee:
		return true
	}
	return false
}

func NewRole(role string) (Role, error) {
	r := Role(role)
	if !r.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная роль пользователя")
	}
	return r, nil
}

// Gender используется и в профиле исполнителя, и как необязательный
// фильтр допуска на позицию заказа.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

func NewGender(gender string) (Gender, error) {
	g := Gender(gender)
	if !g.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректное значение пола")
	}
	return g, nil
}

// Position определяет роль исполнителя на позиции заказа.
type Position string

const (
	PositionHelper    Position = "helper"
	PositionHostess   Position = "hostess"
	PositionInstaller Position = "installer"
	PositionParking   Position = "parking"
	PositionOther     Position = "other"
)

func (p Position) IsValid() bool {
	switch p {
	case PositionHelper, PositionHostess, PositionInstaller, PositionParking, PositionOther:
		return true
	}
	return false
}

func NewPosition(position string) (Position, error) {
	p := Position(position)
	if !p.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная позиция")
	}
	return p, nil
}
