package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db"
	"github.com/emberworks/storefront-backend/pkg/db/models"
)

// ErrDuplicateSession reports that another writer already materialized an
// order for the same checkout session.
var ErrDuplicateSession = gorm.ErrDuplicatedKey

// Repository encapsulates order persistence. Orders are insert-only.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order and its items in one transaction. A unique
// violation on checkout_session_id is mapped to ErrDuplicateSession so the
// caller can recover by re-fetching the winner's row.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return gorm.ErrInvalidValue
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_orders_checkout_session") {
			return ErrDuplicateSession
		}
		return err
	}
	return nil
}

// FindByCheckoutSessionID loads the order materialized from one checkout
// session, items included.
func (r *Repository) FindByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	if sessionID == "" {
		return nil, gorm.ErrInvalidValue
	}
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("checkout_session_id = ?", sessionID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForUser returns the shopper's orders, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, gorm.ErrInvalidValue
	}
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
