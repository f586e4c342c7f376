package favorite

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"canvas/internal/domain"
	"canvas/internal/middleware"
	"canvas/internal/pkg/response"
	"canvas/internal/pkg/validator"
)

// Handler обрабатывает HTTP запросы для избранного
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes регистрирует routes для избранного
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.GET("/resolved", h.GetResolved)
		favorites.GET("/check", h.CheckFavorite)
		favorites.GET("/count", h.CountFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("", h.RemoveFavorite)
	}
}

// GetFavorites GET /favorites?email=
func (h *Handler) GetFavorites(c *gin.Context) {
	favs, err := h.service.List(c.Request.Context(), middleware.EmailOr(c, c.Query("email")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, favs)
}

// GetResolved GET /favorites/resolved?email= возвращает избранное вместе с
// данными работ. Удалённые работы в ответ не попадают.
func (h *Handler) GetResolved(c *gin.Context) {
	items, err := h.service.Resolve(c.Request.Context(), middleware.EmailOr(c, c.Query("email")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// AddFavorite POST /favorites {artworkId, userEmail}
func (h *Handler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid favorite", errs)
		return
	}

	f, err := h.service.Add(c.Request.Context(), req.ArtworkID, middleware.EmailOr(c, req.UserEmail))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, f)
}

// RemoveFavorite DELETE /favorites?artworkId=&email=
func (h *Handler) RemoveFavorite(c *gin.Context) {
	deleted, err := h.service.Remove(c.Request.Context(), c.Query("artworkId"), middleware.EmailOr(c, c.Query("email")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, DeletedResponse{DeletedCount: deleted})
}

// CheckFavorite GET /favorites/check?artworkId=&email=
func (h *Handler) CheckFavorite(c *gin.Context) {
	ok, err := h.service.Check(c.Request.Context(), c.Query("artworkId"), middleware.EmailOr(c, c.Query("email")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, CheckFavoriteResponse{IsFavorite: ok})
}

// CountFavorites GET /favorites/count?artworkId=
func (h *Handler) CountFavorites(c *gin.Context) {
	artworkID := c.Query("artworkId")
	n, err := h.service.CountByArtwork(c.Request.Context(), artworkID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, CountResponse{ArtworkID: domain.CanonicalArtworkID(artworkID), Count: n})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailRequired):
		response.Error(c, http.StatusBadRequest, "EMAIL_REQUIRED", err.Error())
	case errors.Is(err, ErrArtworkIDRequired):
		response.Error(c, http.StatusBadRequest, "ARTWORK_ID_REQUIRED", err.Error())
	default:
		response.FromError(c, err)
	}
}
