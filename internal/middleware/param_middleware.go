package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExtractIDParam создает middleware для извлечения и валидации строкового
// идентификатора из URL. Идентификаторы записей — непустые десятичные строки.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(paramName)
		if !isDecimalID(id) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Invalid %s", paramName),
			})
			c.Abort()
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

func isDecimalID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
