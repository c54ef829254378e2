package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db/models"
)

// Repository runs the aggregate queries behind the admin dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

type orderTotals struct {
	Orders       int64 `gorm:"column:orders"`
	RevenueCents int64 `gorm:"column:revenue_cents"`
}

// OrderTotals returns the all-time order count and gross revenue.
func (r *Repository) OrderTotals(ctx context.Context) (int64, int64, error) {
	var totals orderTotals
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_cents), 0) AS revenue_cents").
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Orders, totals.RevenueCents, nil
}

type dailyTotals struct {
	Day          string `gorm:"column:day"`
	Orders       int64  `gorm:"column:orders"`
	RevenueCents int64  `gorm:"column:revenue_cents"`
}

// DailyOrderTotals buckets orders by calendar day (UTC) from since onward.
// Only days with at least one order appear; the service zero-fills the rest.
func (r *Repository) DailyOrderTotals(ctx context.Context, since time.Time) ([]dailyTotals, error) {
	var rows []dailyTotals
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total_cents), 0) AS revenue_cents").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
