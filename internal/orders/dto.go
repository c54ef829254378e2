package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/emberworks/storefront-backend/pkg/db/models"
)

// OrderItemDTO is one line of a settled order.
type OrderItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// OrderDTO is the public shape of a settled order.
type OrderDTO struct {
	ID                uuid.UUID      `json:"id"`
	UserID            uuid.UUID      `json:"user_id"`
	TotalCents        int64          `json:"total_cents"`
	CouponCode        *string        `json:"coupon_code,omitempty"`
	CheckoutSessionID string         `json:"checkout_session_id"`
	Items             []OrderItemDTO `json:"items"`
	CreatedAt         time.Time      `json:"created_at"`
}

// ToDTO maps the persistence model to its public shape.
func ToDTO(order *models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return OrderDTO{
		ID:                order.ID,
		UserID:            order.UserID,
		TotalCents:        order.TotalCents,
		CouponCode:        order.CouponCode,
		CheckoutSessionID: order.CheckoutSessionID,
		Items:             items,
		CreatedAt:         order.CreatedAt,
	}
}
