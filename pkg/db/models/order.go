package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the durable record of a settled checkout session. The unique index
// on CheckoutSessionID is the serialization point that keeps concurrent
// confirmations of the same session from producing duplicate orders. Orders
// are insert-only; nothing in this service updates or deletes them.
type Order struct {
	ID                uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index"`
	TotalCents        int64       `gorm:"column:total_cents;not null"`
	CouponCode        *string     `gorm:"column:coupon_code"`
	CheckoutSessionID string      `gorm:"column:checkout_session_id;not null;uniqueIndex:idx_orders_checkout_session"`
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
