package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockroom/inventory-api/internal/models"
)

func createUser(t *testing.T, r *GormRepo, login string) *models.User {
	t.Helper()
	u := &models.User{Login: login, Name: login, PasswordHash: "$2a$10$fake", Role: models.RoleUser}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), u))
	return u
}

func TestCreateUserIfNotExists_DuplicateLogin(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	first := createUser(t, r, "alice")

	dup := &models.User{Login: "alice", Name: "Impostor", PasswordHash: "$2a$10$other", Role: models.RoleAdmin}
	err := r.CreateUserIfNotExists(ctx, dup)
	require.ErrorIs(t, err, ErrUserAlreadyExist)

	// The stored record keeps its original fields.
	stored, err := r.FindUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "alice", stored.Name)
	assert.Equal(t, models.RoleUser, stored.Role)
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	r := initTestRepo(t)

	_, err := r.FindUserByLogin(context.Background(), "nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindUserByID(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	u := createUser(t, r, "alice")

	found, err := r.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Login)

	_, err = r.FindUserByID(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaveUser(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	u := createUser(t, r, "alice")
	u.Name = "Alice Liddell"
	require.NoError(t, r.SaveUser(ctx, u))

	stored, err := r.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", stored.Name)
}

func TestListUsers_OrderedByID(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	createUser(t, r, "bob")
	createUser(t, r, "alice")

	users, err := r.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Login)
	assert.Equal(t, "alice", users[1].Login)
}

func TestDeleteUser(t *testing.T) {
	r := initTestRepo(t)
	ctx := context.Background()

	u := createUser(t, r, "alice")

	require.NoError(t, r.DeleteUser(ctx, u.ID))
	require.ErrorIs(t, r.DeleteUser(ctx, u.ID), gorm.ErrRecordNotFound)

	_, err := r.FindUserByID(ctx, u.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
