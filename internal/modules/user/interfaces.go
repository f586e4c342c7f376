package user

import (
	"context"

	"canvas/internal/domain"
	"canvas/internal/repository"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error)
	UpdateProfile(ctx context.Context, email string, p repository.ProfilePatch) (int64, error)
	SetRole(ctx context.Context, id string, role domain.UserRole) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
