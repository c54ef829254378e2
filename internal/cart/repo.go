package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db/models"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type cartLineRecord struct {
	ProductID      uuid.UUID `gorm:"column:product_id"`
	Name           string    `gorm:"column:name"`
	ImageURL       string    `gorm:"column:image_url"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents"`
	Quantity       int       `gorm:"column:quantity"`
}

// ListLines returns the shopper's cart joined with live catalog rows. Lines
// whose product was deleted from the catalog are dropped by the inner join.
func (r *Repository) ListLines(ctx context.Context, userID uuid.UUID) ([]cartLineRecord, error) {
	var records []cartLineRecord
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, p.name, p.image_url, p.price_cents AS unit_price_cents, ci.quantity").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("ci.created_at ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert inserts a cart line or increments the quantity of an existing one.
func (r *Repository) Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP`,
		uuid.New(), userID, productID, quantity).Error
}

// SetQuantity overwrites the quantity of an existing line and reports
// whether the line existed.
func (r *Repository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes one line and reports whether a row existed.
func (r *Repository) Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Clear removes every line in the shopper's cart.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).
		Error
}
