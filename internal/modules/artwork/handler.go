package artwork

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"canvas/internal/middleware"
	"canvas/internal/pkg/response"
	"canvas/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	artworks := rg.Group("/artworks")
	{
		artworks.GET("", h.List)
		artworks.GET("/recent", h.Recent)
		artworks.POST("", h.Create)
		artworks.GET("/:id", h.Get)
		artworks.PATCH("/:id", h.Update)
		artworks.PUT("/:id", h.Update)
		artworks.PATCH("/:id/like", h.Like)
		artworks.DELETE("/:id", h.Delete)
	}
}

// List GET /artworks?email=&category=&limit=&offset=
// Без email отдаёт публичную ленту.
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", errs)
		return
	}

	items, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Recent(c *gin.Context) {
	items, err := h.service.Recent(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// Create POST /artworks. artistEmail по умолчанию берётся из X-User-Email.
func (h *Handler) Create(c *gin.Context) {
	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.ArtistEmail = middleware.EmailOr(c, req.ArtistEmail)

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid artwork", errs)
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// Update PATCH/PUT /artworks/:id. Тело: любое подмножество полей работы.
func (h *Handler) Update(c *gin.Context) {
	var partial map[string]any
	if err := c.ShouldBindJSON(&partial); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Body must be a JSON object")
		return
	}

	matched, err := h.service.Update(c.Request.Context(), c.Param("id"), partial)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MatchedResponse{MatchedCount: matched})
}

func (h *Handler) Like(c *gin.Context) {
	modified, err := h.service.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ModifiedResponse{ModifiedCount: modified})
}

func (h *Handler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, DeletedResponse{DeletedCount: deleted})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fe *FieldError
	switch {
	case errors.As(err, &fe):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid artwork",
			map[string]string{fe.Field: fe.Reason})
	case errors.Is(err, ErrOwnerRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.FromError(c, err)
	}
}
