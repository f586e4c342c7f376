package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvas/internal/domain"
)

func TestUserRepository_CreateDefaultsAndUniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testManager(t))

	u := &domain.User{Email: " Ann@X.com ", Name: "Ann"}
	require.NoError(t, repo.Create(ctx, u))
	assert.True(t, validID(u.ID))
	assert.Equal(t, domain.RoleMember, u.Role)
	assert.Equal(t, "ann@x.com", u.Email)

	dup := &domain.User{Email: "ann@x.com", Name: "Other"}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrConflict)

	_, total, err := repo.List(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUserRepository_GetByEmailAndID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testManager(t))
	u := &domain.User{Email: "ann@x.com", Name: "Ann"}
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.GetByEmail(ctx, "ANN@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", byID.Name)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestUserRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testManager(t))
	require.NoError(t, repo.Create(ctx, &domain.User{Email: "ann@x.com", Name: "Ann Painter"}))
	require.NoError(t, repo.Create(ctx, &domain.User{Email: "bob@x.com", Name: "Bob"}))
	boss := &domain.User{Email: "boss@x.com", Name: "Boss", Role: domain.RoleAdmin}
	require.NoError(t, repo.Create(ctx, boss))

	admins, total, err := repo.List(ctx, UserFilter{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, admins, 1)
	assert.Equal(t, "boss@x.com", admins[0].Email)

	painters, total, err := repo.List(ctx, UserFilter{Query: "PAINTER"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, painters, 1)
	assert.Equal(t, "ann@x.com", painters[0].Email)

	bs, total, err := repo.List(ctx, UserFilter{Query: "bo", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bs, 1)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testManager(t))
	require.NoError(t, repo.Create(ctx, &domain.User{Email: "ann@x.com", Name: "Ann", PhotoURL: "old.png"}))

	name := "Ann B."
	n, err := repo.UpdateProfile(ctx, "ann@x.com", ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	u, err := repo.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann B.", u.Name)
	assert.Equal(t, "old.png", u.PhotoURL)

	n, err = repo.UpdateProfile(ctx, "ghost@x.com", ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.UpdateProfile(ctx, "ann@x.com", ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_SetRoleAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testManager(t))
	u := &domain.User{Email: "ann@x.com"}
	require.NoError(t, repo.Create(ctx, u))

	n, err := repo.SetRole(ctx, u.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	n, err = repo.SetRole(ctx, uuid.NewString(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
