package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/notification"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

// ChangeUserStatusUseCase меняет статус регистрации пользователя.
// Доступен только администраторам; профиль администратора со стороны
// не меняется.
type ChangeUserStatusUseCase struct {
	txManager repository.TxManager
	notifier  notification.Notifier
}

func NewChangeUserStatusUseCase(txManager repository.TxManager, notifier notification.Notifier) *ChangeUserStatusUseCase {
	return &ChangeUserStatusUseCase{txManager: txManager, notifier: notifier}
}

func (uc *ChangeUserStatusUseCase) Execute(ctx context.Context, userID uuid.UUID, actorRole valueobject.Role, status valueobject.UserStatus) (*entity.User, error) {
	if actorRole != valueobject.RoleAdmin {
		return nil, apperror.ErrPermissionDenied
	}

	var user *entity.User

	err := uc.txManager.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := tx.UserQueries().GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.ErrUserNotFound
		}
		if !current.CanStatusBeChangedTo(status) {
			return apperror.ErrUserStatusChangeNotAllowed
		}

		user, err = tx.UserCommands().SetUserStatus(ctx, userID, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.UserStatusChanged(ctx, user)

	return user, nil
}

// GetUserUseCase возвращает пользователя по идентификатору.
type GetUserUseCase struct {
	userRepo repository.UserQueryRepository
}

func NewGetUserUseCase(userRepo repository.UserQueryRepository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := uc.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	return user, nil
}

// FilterUsersUseCase выбирает пользователей по роли и статусу.
// Доступен только администраторам.
type FilterUsersUseCase struct {
	userRepo repository.UserQueryRepository
}

func NewFilterUsersUseCase(userRepo repository.UserQueryRepository) *FilterUsersUseCase {
	return &FilterUsersUseCase{userRepo: userRepo}
}

func (uc *FilterUsersUseCase) Execute(ctx context.Context, actorRole valueobject.Role, filter repository.UserFilter) ([]entity.User, error) {
	if actorRole != valueobject.RoleAdmin {
		return nil, apperror.ErrPermissionDenied
	}
	return uc.userRepo.FilterUsers(ctx, filter)
}
