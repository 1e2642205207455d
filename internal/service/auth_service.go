package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/staffhub/staffing-backend/internal/domain/entity"
	"github.com/staffhub/staffing-backend/internal/domain/repository"
	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/logger"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
	"github.com/staffhub/staffing-backend/internal/validation"
)

// AuthService инкапсулирует регистрацию и аутентификацию.
// Новый пользователь попадает в статус pending и до подтверждения
// администратором войти не может.
type AuthService struct {
	users        repository.UserQueryRepository
	userCommands repository.UserCommandRepository
	sessions     repository.SessionRepository
	tokenManager *TokenManager
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Phone     string
	Role      string
	Gender    string
	BirthDate *time.Time
	City      string
	Company   string
	About     string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог авторизации.
type AuthResult struct {
	User      *entity.User
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(users repository.UserQueryRepository, userCommands repository.UserCommandRepository, sessions repository.SessionRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		users:        users,
		userCommands: userCommands,
		sessions:     sessions,
		tokenManager: tokenManager,
	}
}

// Register создаёт пользователя с профилем роли и ставит его в очередь
// на подтверждение. Повторная регистрация на занятый email разрешена
// только после сброса или отказа.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	role, err := valueobject.NewRole(in.Role)
	if err != nil {
		return nil, err
	}
	if role == valueobject.RoleAdmin {
		return nil, apperror.ErrPermissionDenied
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsAllowedToRegister() {
		return nil, apperror.ErrDuplicateEntry
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}

	if existing != nil {
		existing.PasswordHash = string(passHash)
		existing.Name = in.Name
		existing.Phone = in.Phone
		existing.Status = valueobject.UserStatusPending
		updated, err := s.userCommands.UpdateUser(ctx, existing)
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(passHash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
		Status:       valueobject.UserStatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := s.userCommands.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.createProfile(ctx, user, in); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) createProfile(ctx context.Context, user *entity.User, in RegisterInput) error {
	switch user.Role {
	case valueobject.RoleContractor:
		if err := validation.ValidateCompany(in.Company); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		return s.userCommands.CreateContractor(ctx, &entity.Contractor{
			UserID:  user.ID,
			Company: in.Company,
			About:   in.About,
		})
	case valueobject.RoleContractee:
		gender, err := valueobject.NewGender(in.Gender)
		if err != nil {
			return err
		}
		if err := validation.ValidateCity(in.City); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		return s.userCommands.CreateContractee(ctx, &entity.Contractee{
			UserID:    user.ID,
			Gender:    gender,
			BirthDate: in.BirthDate,
			City:      in.City,
		})
	}
	return nil
}

// Login проверяет учётные данные и возвращает токены.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	switch user.Status {
	case valueobject.UserStatusRegistered:
	case valueobject.UserStatusPending:
		return nil, apperror.New(apperror.ErrCodeForbidden, "учётная запись ожидает подтверждения")
	case valueobject.UserStatusBanned:
		return nil, apperror.New(apperror.ErrCodeForbidden, "учётная запись заблокирована")
	default:
		return nil, apperror.ErrInvalidCredentials
	}

	tokenPair, _, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токены")
	}

	if err := s.sessions.CreateSession(ctx, repository.Session{
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: tokenPair}, nil
}

// Refresh выпускает новую пару токенов взамен действующего refresh-токена.
func (s *AuthService) Refresh(ctx context.Context, oldToken string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(oldToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized.WithCause(err)
	}

	session, err := s.sessions.GetSession(ctx, oldToken)
	if err != nil {
		return nil, err
	}
	if session == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrUnauthorized.WithCause(err)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsRegistered() {
		return nil, apperror.ErrUnauthorized
	}

	tokenPair, _, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токены")
	}

	if err := s.sessions.DeleteSession(ctx, oldToken); err != nil {
		logger.Log.WithField("user_id", userID).Warn("auth service: не удалось удалить старую сессию")
	}

	if err := s.sessions.CreateSession(ctx, repository.Session{
		UserID:       userID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}); err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Logout удаляет сессию refresh-токена.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.DeleteSession(ctx, refreshToken)
}
