package models

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a percentage discount code. A nil UserID means the code is open
// to any shopper; otherwise only the owner may redeem it. Deactivation
// happens exactly once, after the consuming order is durably persisted.
type Coupon struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code            string     `gorm:"column:code;not null;uniqueIndex:idx_coupons_code_user"`
	DiscountPercent int        `gorm:"column:discount_percent;not null"`
	UserID          *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex:idx_coupons_code_user"`
	IsActive        bool       `gorm:"column:is_active;not null;default:true"`
	ExpiresAt       time.Time  `gorm:"column:expires_at;not null"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
