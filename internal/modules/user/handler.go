package user

import (
	"errors"
	"io"
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
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.GetUsers)
		users.GET("/by-email", h.GetByEmail)
		users.PATCH("/profile", h.UpdateProfile)
		users.PATCH("/:id/role", h.SetRole)
		users.DELETE("/:id", h.Delete)
	}
}

// Create POST /users. 201 для новой записи, 200 если email уже есть.
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.Email = middleware.EmailOr(c, req.Email)
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user", errs)
		return
	}

	u, created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, CreateUserResponse{User: u, Created: created})
}

// GetUsers GET /users?role=&q=&page=&limit=
func (h *Handler) GetUsers(c *gin.Context) {
	var filter UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	if errs := validator.Validate(filter); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", errs)
		return
	}

	users, total, page, limit, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, UserListResponse{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (h *Handler) GetByEmail(c *gin.Context) {
	u, err := h.service.GetByEmail(c.Request.Context(), middleware.EmailOr(c, c.Query("email")))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// UpdateProfile PATCH /users/profile {email, name, photoURL}
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile", errs)
		return
	}

	matched, err := h.service.UpdateProfile(c.Request.Context(), middleware.EmailOr(c, req.Email), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MatchedResponse{MatchedCount: matched})
}

// SetRole PATCH /users/:id/role. Без тела повышает до admin.
func (h *Handler) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if c.Request.ContentLength != 0 {
		// chunked запрос без тела приходит с ContentLength -1 и даёт io.EOF
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	matched, err := h.service.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MatchedResponse{MatchedCount: matched})
}

func (h *Handler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, DeletedResponse{DeletedCount: deleted})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmailRequired):
		response.Error(c, http.StatusBadRequest, "EMAIL_REQUIRED", err.Error())
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", err.Error())
	default:
		response.FromError(c, err)
	}
}
