package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db/models"
	"github.com/emberworks/storefront-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'customer',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Dana Shopper",
		Email:        "dana@example.com",
		PasswordHash: "hashed",
		Role:         enums.UserRoleCustomer,
	}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.FindByEmail(ctx, "  DANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Shopper", byID.Name)
}

func TestRepositoryDuplicateEmail(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := &models.User{ID: uuid.New(), Name: "A", Email: "dup@example.com", PasswordHash: "x", Role: enums.UserRoleCustomer}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{ID: uuid.New(), Name: "B", Email: "dup@example.com", PasswordHash: "y", Role: enums.UserRoleCustomer}
	require.Error(t, repo.Create(ctx, second))
}

func TestRepositoryTouchLastLogin(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Name: "C", Email: "c@example.com", PasswordHash: "x", Role: enums.UserRoleCustomer}
	require.NoError(t, repo.Create(ctx, user))
	require.Nil(t, user.LastLoginAt)

	require.NoError(t, repo.TouchLastLogin(ctx, user.ID))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
}
