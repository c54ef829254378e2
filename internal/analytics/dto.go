package analytics

import "github.com/shopspring/decimal"

// Summary is the admin dashboard headline view.
type Summary struct {
	TotalUsers    int64           `json:"total_users"`
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	RevenueCents  int64           `json:"revenue_cents"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// DailySales is one bucket of the trailing sales series. Days without
// orders are present with zero values.
type DailySales struct {
	Date         string          `json:"date"`
	Orders       int64           `json:"orders"`
	RevenueCents int64           `json:"revenue_cents"`
	Revenue      decimal.Decimal `json:"revenue"`
}
