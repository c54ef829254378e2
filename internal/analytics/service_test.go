package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db/models"
)

func setupAnalyticsTestDB(t *testing.T) *gorm.DB {
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
);
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
);
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_cents INTEGER NOT NULL,
  coupon_code TEXT,
  checkout_session_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

var clock = time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)

func buildAnalyticsService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupAnalyticsTestDB(t)
	svc, err := NewService(ServiceParams{
		Repo: NewRepository(db),
		Now:  func() time.Time { return clock },
	})
	require.NoError(t, err)
	return svc, db
}

func insertOrder(t *testing.T, db *gorm.DB, totalCents int64, createdAt time.Time) {
	t.Helper()
	err := db.Exec(
		"INSERT INTO orders (id, user_id, total_cents, checkout_session_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.NewString(), uuid.NewString(), totalCents, "cs_"+uuid.NewString(), createdAt, createdAt,
	).Error
	require.NoError(t, err)
}

func TestServiceSummary(t *testing.T) {
	svc, db := buildAnalyticsService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{ID: uuid.New(), Name: "A", Email: "a@example.com", PasswordHash: "x"}).Error)
	require.NoError(t, db.Create(&models.Product{ID: uuid.New(), Name: "Mug", PriceCents: 1200}).Error)
	insertOrder(t, db, 22500, clock.Add(-time.Hour))
	insertOrder(t, db, 5000, clock.Add(-48*time.Hour))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalUsers)
	assert.Equal(t, int64(1), summary.TotalProducts)
	assert.Equal(t, int64(2), summary.TotalOrders)
	assert.Equal(t, int64(27500), summary.RevenueCents)
	assert.True(t, summary.Revenue.Equal(decimal.RequireFromString("275")))
}

func TestServiceSummaryEmptyDatabase(t *testing.T) {
	svc, _ := buildAnalyticsService(t)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalOrders)
	assert.Equal(t, int64(0), summary.RevenueCents)
	assert.True(t, summary.Revenue.IsZero())
}

func TestServiceDailySalesZeroFills(t *testing.T) {
	svc, db := buildAnalyticsService(t)

	// two orders today, one order three days ago, nothing else in the window
	insertOrder(t, db, 10000, clock)
	insertOrder(t, db, 2500, clock.Add(-2*time.Hour))
	insertOrder(t, db, 5000, clock.AddDate(0, 0, -3))
	// outside the window, must not appear
	insertOrder(t, db, 99999, clock.AddDate(0, 0, -10))

	series, err := svc.DailySales(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 7)

	assert.Equal(t, "2026-03-01", series[0].Date)
	assert.Equal(t, "2026-03-07", series[6].Date)

	var windowRevenue int64
	for _, bucket := range series {
		windowRevenue += bucket.RevenueCents
	}
	assert.Equal(t, int64(17500), windowRevenue)

	assert.Equal(t, int64(2), series[6].Orders)
	assert.Equal(t, int64(12500), series[6].RevenueCents)
	assert.Equal(t, int64(1), series[3].Orders)
	assert.Equal(t, int64(5000), series[3].RevenueCents)

	// untouched days render as explicit zeros
	assert.Equal(t, int64(0), series[0].Orders)
	assert.True(t, series[0].Revenue.IsZero())
}
