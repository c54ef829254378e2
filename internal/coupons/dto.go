package coupons

import (
	"time"

	"github.com/google/uuid"

	"github.com/emberworks/storefront-backend/pkg/db/models"
)

// CouponDTO is the public shape of a coupon.
type CouponDTO struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discount_percent"`
	IsActive        bool      `json:"is_active"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// ValidateRequest carries the coupon lookup payload.
type ValidateRequest struct {
	Code string `json:"code" validate:"required,min=1,max=64"`
}

// CreateCouponRequest carries the admin create payload. UserID is optional;
// when empty the coupon is open to any shopper.
type CreateCouponRequest struct {
	Code            string     `json:"code" validate:"required,min=3,max=64"`
	DiscountPercent int        `json:"discount_percent" validate:"required,gte=1,lte=100"`
	UserID          *uuid.UUID `json:"user_id"`
	ExpiresAt       time.Time  `json:"expires_at" validate:"required"`
}

func toDTO(c models.Coupon) CouponDTO {
	return CouponDTO{
		ID:              c.ID,
		Code:            c.Code,
		DiscountPercent: c.DiscountPercent,
		IsActive:        c.IsActive,
		ExpiresAt:       c.ExpiresAt,
	}
}
