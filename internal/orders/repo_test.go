package orders

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

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_cents INTEGER NOT NULL,
  coupon_code TEXT,
  checkout_session_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func buildOrder(userID uuid.UUID, sessionID string, totalCents int64) *models.Order {
	return &models.Order{
		ID:                uuid.New(),
		UserID:            userID,
		TotalCents:        totalCents,
		CheckoutSessionID: sessionID,
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, UnitPriceCents: totalCents / 2},
		},
	}
}

func TestRepositoryCreateAndFetch(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	order := buildOrder(userID, "cs_test_abc", 11000)
	require.NoError(t, repo.Create(ctx, order))

	loaded, err := repo.FindByCheckoutSessionID(ctx, "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, order.ID, loaded.ID)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, int64(5500), loaded.Items[0].UnitPriceCents)
}

func TestRepositoryDuplicateSessionRejected(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()

	first := buildOrder(uuid.New(), "cs_test_dup", 5000)
	require.NoError(t, repo.Create(ctx, first))

	second := buildOrder(uuid.New(), "cs_test_dup", 9000)
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, ErrDuplicateSession)

	// the winner's row is untouched
	loaded, err := repo.FindByCheckoutSessionID(ctx, "cs_test_dup")
	require.NoError(t, err)
	assert.Equal(t, first.ID, loaded.ID)
	assert.Equal(t, int64(5000), loaded.TotalCents)
}

func TestRepositoryFindMissingSession(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))

	_, err := repo.FindByCheckoutSessionID(context.Background(), "cs_missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListForUser(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	ctx := context.Background()
	alice := uuid.New()

	require.NoError(t, repo.Create(ctx, buildOrder(alice, "cs_1", 1000)))
	require.NoError(t, repo.Create(ctx, buildOrder(alice, "cs_2", 2000)))
	require.NoError(t, repo.Create(ctx, buildOrder(uuid.New(), "cs_3", 3000)))

	mine, err := repo.ListForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, order := range mine {
		assert.Equal(t, alice, order.UserID)
		assert.Len(t, order.Items, 1)
	}
}
