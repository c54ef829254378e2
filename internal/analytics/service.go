package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/emberworks/storefront-backend/pkg/errors"
)

const salesWindowDays = 7

// Service serves the admin dashboard aggregates.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	DailySales(ctx context.Context) ([]DailySales, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// ServiceParams groups dependencies for the analytics service.
type ServiceParams struct {
	Repo *Repository
	Now  func() time.Time
}

// NewService builds an analytics service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("analytics repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

// Summary returns the headline counters for the dashboard.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	products, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	orderCount, revenueCents, err := s.repo.OrderTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate orders")
	}

	return &Summary{
		TotalUsers:    users,
		TotalProducts: products,
		TotalOrders:   orderCount,
		RevenueCents:  revenueCents,
		Revenue:       centsToDollars(revenueCents),
	}, nil
}

// DailySales returns the trailing seven days of orders, zero-filled so
// charts always render a complete series.
func (s *service) DailySales(ctx context.Context) ([]DailySales, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(salesWindowDays - 1))

	rows, err := s.repo.DailyOrderTotals(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate daily orders")
	}

	byDay := make(map[string]dailyTotals, len(rows))
	for _, row := range rows {
		byDay[normalizeDay(row.Day)] = row
	}

	series := make([]DailySales, 0, salesWindowDays)
	for i := 0; i < salesWindowDays; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		bucket := DailySales{Date: day, Revenue: decimal.Zero}
		if row, ok := byDay[day]; ok {
			bucket.Orders = row.Orders
			bucket.RevenueCents = row.RevenueCents
			bucket.Revenue = centsToDollars(row.RevenueCents)
		}
		series = append(series, bucket)
	}
	return series, nil
}

// normalizeDay trims driver-specific time suffixes down to YYYY-MM-DD.
func normalizeDay(day string) string {
	if len(day) > 10 {
		return day[:10]
	}
	return day
}

func centsToDollars(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
