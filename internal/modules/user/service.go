package user

import (
	"context"
	"errors"

	"canvas/internal/domain"
	"canvas/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// Create регистрирует пользователя при первом входе. Если email уже занят,
// возвращает существующую запись и created=false. Гонку двух входов решает
// уникальный индекс на email.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, bool, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" {
		return nil, false, ErrEmailRequired
	}

	u := &domain.User{
		Email:    email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     domain.RoleMember,
	}
	err := s.users.Create(ctx, u)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, repository.ErrConflict) {
		return nil, false, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// ListUsers supports simple filters + pagination
func (s *Service) ListUsers(ctx context.Context, filter UserListFilter) ([]domain.User, int64, int, int, error) {
	page, limit := filter.Page, filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	users, total, err := s.users.List(ctx, repository.UserFilter{
		Role:   filter.Role,
		Query:  filter.Query,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return users, total, page, limit, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.users.GetByEmail(ctx, email)
}

// UpdateProfile меняет только name и photoURL. Возвращает число найденных
// записей, 0 означает что пользователя нет.
func (s *Service) UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (int64, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return 0, ErrEmailRequired
	}
	return s.users.UpdateProfile(ctx, email, repository.ProfilePatch{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
}

// SetRole меняет роль. Пустая роль означает повышение до admin.
func (s *Service) SetRole(ctx context.Context, id string, role string) (int64, error) {
	r := domain.UserRole(role)
	if role == "" {
		r = domain.RoleAdmin
	}
	if !r.Valid() {
		return 0, ErrInvalidRole
	}
	return s.users.SetRole(ctx, id, r)
}

func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	return s.users.Delete(ctx, id)
}
