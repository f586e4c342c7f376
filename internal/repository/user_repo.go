package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"canvas/internal/domain"
)

type UserFilter struct {
	Role   string
	Query  string // name/email contains
	Limit  int
	Offset int
}

// ProfilePatch holds the mutable profile fields; nil means "leave as is".
type ProfilePatch struct {
	Name     *string
	PhotoURL *string
}

type UserRepository struct {
	db DBProvider
}

func NewUserRepository(db DBProvider) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u. The unique index on email turns a duplicate into
// ErrConflict even when two sign-ins race.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	db, err := session(ctx, r.db, "users.create")
	if err != nil {
		return err
	}

	u.ID = ""
	if err := db.Create(u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrConflict
		}
		return storageErr("users.create", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db, err := session(ctx, r.db, "users.get_by_email")
	if err != nil {
		return nil, err
	}

	var u domain.User
	if err := db.Where("email = ?", domain.NormalizeEmail(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("users.get_by_email", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	db, err := session(ctx, r.db, "users.get")
	if err != nil {
		return nil, err
	}

	var u domain.User
	if err := db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("users.get", err)
	}
	return &u, nil
}

// List возвращает пользователей по фильтру и общее количество для пагинации.
func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]domain.User, int64, error) {
	db, err := session(ctx, r.db, "users.list")
	if err != nil {
		return nil, 0, err
	}

	filtered := func(tx *gorm.DB) *gorm.DB {
		if role := strings.TrimSpace(f.Role); role != "" {
			tx = tx.Where("role = ?", role)
		}
		if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
			like := "%" + term + "%"
			tx = tx.Where("(LOWER(name) LIKE ? OR email LIKE ?)", like, like)
		}
		return tx
	}

	// Сначала считаем общее количество
	var total int64
	if err := db.Model(&domain.User{}).Scopes(filtered).Count(&total).Error; err != nil {
		return nil, 0, storageErr("users.list", err)
	}

	users := []domain.User{}
	q := db.Scopes(filtered).Order("created_at DESC").Order("id")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, storageErr("users.list", err)
	}
	return users, total, nil
}

// UpdateProfile меняет имя и/или фото владельца email. Возвращает число
// найденных записей.
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, p ProfilePatch) (int64, error) {
	db, err := session(ctx, r.db, "users.update_profile")
	if err != nil {
		return 0, err
	}

	values := map[string]any{}
	if p.Name != nil {
		values["name"] = strings.TrimSpace(*p.Name)
	}
	if p.PhotoURL != nil {
		values["photo_url"] = strings.TrimSpace(*p.PhotoURL)
	}

	q := db.Model(&domain.User{}).Where("email = ?", domain.NormalizeEmail(email))
	if len(values) == 0 {
		var matched int64
		if err := q.Count(&matched).Error; err != nil {
			return 0, storageErr("users.update_profile", err)
		}
		return matched, nil
	}

	res := q.Updates(values)
	if res.Error != nil {
		return 0, storageErr("users.update_profile", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role domain.UserRole) (int64, error) {
	id, err := normalizeID(id)
	if err != nil {
		return 0, err
	}
	db, err := session(ctx, r.db, "users.set_role")
	if err != nil {
		return 0, err
	}

	res := db.Model(&domain.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return 0, storageErr("users.set_role", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	id, err := normalizeID(id)
	if err != nil {
		return 0, err
	}
	db, err := session(ctx, r.db, "users.delete")
	if err != nil {
		return 0, err
	}

	res := db.Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return 0, storageErr("users.delete", res.Error)
	}
	return res.RowsAffected, nil
}
