package middleware

import (
	"github.com/gin-gonic/gin"

	"canvas/internal/domain"
)

const (
	callerHeader = "X-User-Email"
	callerKey    = "user_email"
)

// Caller кладёт в контекст email из X-User-Email. Это не аутентификация:
// заголовок только подставляет email по умолчанию там, где он не передан
// явно.
func Caller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if email := domain.NormalizeEmail(c.GetHeader(callerHeader)); email != "" {
			c.Set(callerKey, email)
		}
		c.Next()
	}
}

// CallerEmail возвращает email, выставленный Caller, или пустую строку.
func CallerEmail(c *gin.Context) string {
	return c.GetString(callerKey)
}

// EmailOr возвращает explicit, если он задан, иначе email вызывающего.
func EmailOr(c *gin.Context, explicit string) string {
	if email := domain.NormalizeEmail(explicit); email != "" {
		return email
	}
	return CallerEmail(c)
}
