package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"canvas/internal/middleware"
	"canvas/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/stats", h.GetStats)
	}
}

// GetStats GET /admin/stats: количество пользователей, работ и избранного.
func (h *Handler) GetStats(c *gin.Context) {
	h.log.WithField("caller", middleware.CallerEmail(c)).Info("admin action: GetStats")

	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
