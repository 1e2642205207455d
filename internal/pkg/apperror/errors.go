package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал
// для предопределённых ошибок, обёрнутых через WithCause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// WithCause возвращает копию предопределённой ошибки с прикреплённой причиной.
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeForbidden
}

func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeConflict
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

// Предопределённые ошибки сервисного уровня.
// Сообщения стабильны и не раскрывают внутренних деталей хранилища.
var (
	ErrOrderNotFound  = New(ErrCodeNotFound, "заказ не найден")
	ErrDetailNotFound = New(ErrCodeNotFound, "позиция заказа не найдена")
	ErrReplyNotFound  = New(ErrCodeNotFound, "отклик не найден")
	ErrUserNotFound   = New(ErrCodeNotFound, "пользователь не найден")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrInvalidCredentials = New(ErrCodeUnauthorized, "неверные учетные данные")
	ErrForbidden          = New(ErrCodeForbidden, "недостаточно прав")
	ErrPermissionDenied   = New(ErrCodeForbidden, "действие недоступно для данной роли")

	// Нарушения машин состояний заказа и отклика.
	ErrOrderStatusChangeNotAllowed = New(ErrCodeConflict, "изменение статуса заказа недопустимо")
	ErrOrderActionNotAllowed       = New(ErrCodeConflict, "действие недоступно для текущего статуса заказа")
	ErrOrderAssignmentNotAllowed   = New(ErrCodeConflict, "заказ не может быть взят на кураторство")
	ErrReplyStatusChangeNotAllowed = New(ErrCodeConflict, "изменение статуса отклика недопустимо")
	ErrReplySubmitNotAllowed       = New(ErrCodeConflict, "отклик не может быть отправлен")
	ErrDetailFull                  = New(ErrCodeConflict, "на позицию не осталось свободных мест")
	ErrUserStatusChangeNotAllowed  = New(ErrCodeConflict, "изменение статуса пользователя недопустимо")

	ErrMissingOrderDetails = New(ErrCodeValidation, "сведения заказа отсутствуют")
	ErrInvalidInput        = New(ErrCodeValidation, "некорректные входные данные")

	ErrDuplicateEntry = New(ErrCodeConflict, "запись уже существует")
)

// ReplySubmitNotAllowed возвращает ошибку отправки отклика с сообщением нарушенного правила.
func ReplySubmitNotAllowed(reason string) *AppError {
	return &AppError{
		Code:       ErrCodeConflict,
		Message:    "отклик не может быть отправлен: " + reason,
		HTTPStatus: http.StatusConflict,
	}
}
