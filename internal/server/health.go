package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"canvas/internal/pkg/response"
	"canvas/internal/repository"
)

const healthTimeout = 2 * time.Second

type healthHandler struct {
	db repository.DBProvider
}

func newHealthHandler(db repository.DBProvider) *healthHandler {
	return &healthHandler{db: db}
}

// Ping GET /
func (h *healthHandler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "Canvas Running On Server!")
}

// Check GET /health: пингует общий пул соединений.
func (h *healthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	db, err := h.db.Acquire(ctx)
	if err == nil {
		err = ping(ctx, db)
	}
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database is not reachable")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":   "ok",
		"database": db.Dialector.Name(),
	})
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
