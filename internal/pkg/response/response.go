package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"canvas/internal/database"
	"canvas/internal/repository"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// CustomError пишет ошибку и прерывает цепочку middleware.
func CustomError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError переводит ошибки слоя хранения в HTTP-ответ. Текст драйвера
// наружу не отдаётся, он попадает в c.Errors и в лог.
func FromError(c *gin.Context, err error) {
	var cfgErr *database.ConfigurationError
	var storageErr *repository.StorageError

	switch {
	case errors.Is(err, repository.ErrInvalidID):
		Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid identifier")
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, repository.ErrConflict):
		Error(c, http.StatusConflict, "CONFLICT", "Resource already exists")
	case errors.As(err, &cfgErr):
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "CONFIGURATION_ERROR", "Storage is not configured")
	case errors.As(err, &storageErr):
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Storage operation failed")
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
