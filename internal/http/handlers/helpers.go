package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/staffhub/staffing-backend/internal/domain/valueobject"
	"github.com/staffhub/staffing-backend/internal/http/middleware"
	"github.com/staffhub/staffing-backend/internal/pkg/apperror"
)

var errUserNotInContext = errors.New("пользователь не найден в контексте")

// currentUserID извлекает userID из контекста.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, errUserNotInContext
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, errUserNotInContext
	}

	return userID, nil
}

// currentUserRole извлекает роль пользователя из контекста.
func currentUserRole(c *gin.Context) (valueobject.Role, error) {
	raw, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return "", errUserNotInContext
	}

	roleStr, ok := raw.(string)
	if !ok {
		return "", errUserNotInContext
	}

	return valueobject.NewRole(roleStr)
}

// actor собирает идентичность текущего пользователя одним вызовом.
func actor(c *gin.Context) (uuid.UUID, valueobject.Role, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := currentUserRole(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, role, nil
}

// respondError переводит ошибку в HTTP ответ: apperror несёт собственный
// статус и сообщение, остальное маскируется как внутренняя ошибка
// и уходит в централизованный обработчик для логирования.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		_ = c.Error(err)
		c.JSON(appErr.HTTPStatus, gin.H{"error": appErr.Message})
		return
	}

	if errors.Is(err, errUserNotInContext) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
}

// pagination читает limit/offset из query с разумными границами.
func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
