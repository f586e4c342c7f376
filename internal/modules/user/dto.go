package user

import "canvas/internal/domain"

// CreateUserRequest приходит при первом входе пользователя. Роль всегда
// member, повысить можно только через SetRole.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type UpdateProfileRequest struct {
	Email    string  `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoURL"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type UserListFilter struct {
	Role  string `form:"role" validate:"omitempty,role"`
	Query string `form:"q"` // name/email contains
	Page  int    `form:"page" validate:"gte=0"`
	Limit int    `form:"limit" validate:"gte=0"`
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// CreateUserResponse: created=false, если пользователь с таким email уже был.
type CreateUserResponse struct {
	User    *domain.User `json:"user"`
	Created bool         `json:"created"`
}

type MatchedResponse struct {
	MatchedCount int64 `json:"matchedCount"`
}

type DeletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
