package cart

import (
	"github.com/google/uuid"
)

// AddItemRequest carries the add-to-cart payload.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0,lte=99"`
}

// UpdateItemRequest carries the quantity mutation payload. A quantity of
// zero removes the line.
type UpdateItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=0,lte=99"`
}

// CartItemDTO is one cart line joined with its product.
type CartItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	ImageURL       string    `json:"image_url"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int64     `json:"line_total_cents"`
}

// CartDTO is the full cart view returned to shoppers.
type CartDTO struct {
	Items      []CartItemDTO `json:"items"`
	TotalCents int64         `json:"total_cents"`
}
