package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UUIDValidator отклоняет запрос, если хотя бы один из перечисленных
// path-параметров не является валидным UUID. Хэндлеры после этого
// парсят параметры без повторных проверок формата.
func UUIDValidator(paramNames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range paramNames {
			raw := c.Param(name)
			if raw == "" {
				abortBadParam(c, "параметр "+name+" обязателен")
				return
			}
			if _, err := uuid.Parse(raw); err != nil {
				abortBadParam(c, "параметр "+name+" должен быть валидным UUID")
				return
			}
		}
		c.Next()
	}
}

func abortBadParam(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
