package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
)

// UserFilter задаёт условия выборки пользователей.
type UserFilter struct {
	Role   *valueobject.Role
	Status *valueobject.UserStatus
	Gender *valueobject.Gender
	Limit  int
	Offset int
}

// UserQueryRepository — контракт чтения пользователей и профилей.
type UserQueryRepository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	FilterUsers(ctx context.Context, filter UserFilter) ([]entity.User, error)
	GetContractor(ctx context.Context, userID uuid.UUID) (*entity.Contractor, error)
	GetContractee(ctx context.Context, userID uuid.UUID) (*entity.Contractee, error)
	GetAdmin(ctx context.Context, userID uuid.UUID) (*entity.Admin, error)
}

// UserCommandRepository — контракт записи пользователей.
type UserCommandRepository interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	SetUserStatus(ctx context.Context, id uuid.UUID, status valueobject.UserStatus) (*entity.User, error)
	CreateContractor(ctx context.Context, contractor *entity.Contractor) error
	CreateContractee(ctx context.Context, contractee *entity.Contractee) error
	CreateAdmin(ctx context.Context, admin *entity.Admin) error
	UpdateContractor(ctx context.Context, contractor *entity.Contractor) error
	UpdateContractee(ctx context.Context, contractee *entity.Contractee) error
}

// Session — выданный refresh-токен и срок его жизни.
type Session struct {
	UserID       uuid.UUID
	RefreshToken string
	ExpiresAt    time.Time
}

// SessionRepository хранит refresh-сессии.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, refreshToken string) (*Session, error)
	DeleteSession(ctx context.Context, refreshToken string) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error
}
