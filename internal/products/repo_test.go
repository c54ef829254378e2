package products

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
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  price_cents INTEGER NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedProduct(t *testing.T, repo *Repository, name, category string, priceCents int64, featured bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		PriceCents: priceCents,
		Category:   category,
		IsFeatured: featured,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestRepositoryListFiltering(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))
	ctx := context.Background()

	hoodie := seedProduct(t, repo, "Hoodie", "apparel", 5500, true)
	seedProduct(t, repo, "Mug", "kitchen", 1200, false)
	seedProduct(t, repo, "Tee", "apparel", 2500, false)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	featured, err := repo.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, hoodie.ID, featured[0].ID)

	apparel, err := repo.ListByCategory(ctx, "apparel")
	require.NoError(t, err)
	assert.Len(t, apparel, 2)

	random, err := repo.ListRandom(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, random, 2)
}

func TestRepositoryFindByIDs(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))
	ctx := context.Background()

	hoodie := seedProduct(t, repo, "Hoodie", "apparel", 5500, false)
	mug := seedProduct(t, repo, "Mug", "kitchen", 1200, false)

	rows, err := repo.FindByIDs(ctx, []uuid.UUID{hoodie.ID, mug.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositorySetFeaturedAndDelete(t *testing.T) {
	repo := NewRepository(setupProductsTestDB(t))
	ctx := context.Background()

	mug := seedProduct(t, repo, "Mug", "kitchen", 1200, false)

	updated, err := repo.SetFeatured(ctx, mug.ID, true)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.SetFeatured(ctx, uuid.New(), true)
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := repo.Delete(ctx, mug.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, mug.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
