package repository

import (
	"context"
	"testing"

	"github.com/lluisEvan/ProjetoAppFiscal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:    "ana@example.com",
		Username: "ana_silva",
		Password: "hashed-password",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "ana_silva", got.Username)
	assert.Empty(t, got.Password, "GetByID must not load the password digest")
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "bruno@example.com", "bruno")

	got, err := repo.GetByEmail(ctx, "bruno@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.NotEmpty(t, got.Password, "GetByEmail must include the digest for login checks")

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetByEmailOrUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "carla@example.com", "carla")

	byEmail, err := repo.GetByEmailOrUsername(ctx, "carla@example.com", "someone_else")
	require.NoError(t, err)
	assert.NotNil(t, byEmail)

	byUsername, err := repo.GetByEmailOrUsername(ctx, "other@example.com", "carla")
	require.NoError(t, err)
	assert.NotNil(t, byUsername)

	neither, err := repo.GetByEmailOrUsername(ctx, "other@example.com", "someone_else")
	require.NoError(t, err)
	assert.Nil(t, neither)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "dup@example.com", "original")

	err := repo.Create(ctx, &models.User{
		Email:    "dup@example.com",
		Username: "different",
		Password: "hash",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "one@example.com", "taken")

	err := repo.Create(ctx, &models.User{
		Email:    "two@example.com",
		Username: "taken",
		Password: "hash",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_UpdateUsernameConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "first@example.com", "first")
	second := createTestUser(t, db, "second@example.com", "second")

	second.Username = "first"
	err := repo.Update(ctx, second)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_UpdatePreservesPasswordDigest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "keep@example.com", "keeper")

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, loaded.Password)

	loaded.Username = "keeper_renamed"
	require.NoError(t, repo.Update(ctx, loaded))

	got, err := repo.GetByEmail(ctx, "keep@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "keeper_renamed", got.Username)
	assert.Equal(t, created.Password, got.Password, "updating a profile must not touch the stored digest")
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(errString("duplicate key value violates unique constraint \"idx_users_email\"")))
	assert.True(t, isUniqueConstraintError(errString("UNIQUE constraint failed: users.username")))
	assert.True(t, isUniqueConstraintError(errString("ERROR: ... (SQLSTATE 23505)")))
	assert.False(t, isUniqueConstraintError(errString("connection refused")))
}

type errString string

func (e errString) Error() string { return string(e) }
