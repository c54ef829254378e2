package checkout

import (
	"github.com/emberworks/storefront-backend/internal/coupons"
	"github.com/emberworks/storefront-backend/internal/orders"
)

// CreateSessionRequest carries the payload for starting a hosted checkout.
// The cart contents and prices are loaded server side; only the coupon code
// is taken from the client.
type CreateSessionRequest struct {
	CouponCode string `json:"coupon_code" validate:"omitempty,min=1,max=64"`
}

// CreateSessionResponse points the client at the provider-hosted page.
type CreateSessionResponse struct {
	SessionID          string `json:"session_id"`
	URL                string `json:"url"`
	OriginalTotalCents int64  `json:"original_total_cents"`
	DiscountCents      int64  `json:"discount_cents"`
	FinalTotalCents    int64  `json:"final_total_cents"`
}

// ConfirmRequest carries the session handed back by the provider redirect.
type ConfirmRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// ConfirmResponse reports the materialized order. Created is false when an
// earlier confirmation of the same session already produced the order.
type ConfirmResponse struct {
	Order        orders.OrderDTO    `json:"order"`
	Created      bool               `json:"created"`
	RewardCoupon *coupons.CouponDTO `json:"reward_coupon,omitempty"`
}
