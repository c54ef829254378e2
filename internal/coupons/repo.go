package coupons

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db/models"
)

// Repository encapsulates coupon persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a coupon repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a coupon row.
func (r *Repository) Create(ctx context.Context, coupon *models.Coupon) error {
	if coupon == nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).Create(coupon).Error
}

// FindByCodeForUser loads the coupon a shopper could redeem under this code:
// either their personal coupon or an unowned one. Personal coupons win when
// both exist.
func (r *Repository) FindByCodeForUser(ctx context.Context, code string, userID uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND (user_id = ? OR user_id IS NULL)", code, userID).
		Order("user_id IS NULL ASC").
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ListActiveForUser returns unexpired active coupons the shopper can use.
func (r *Repository) ListActiveForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.Coupon, error) {
	var rows []models.Coupon
	err := r.db.WithContext(ctx).
		Where("(user_id = ? OR user_id IS NULL) AND is_active = ? AND expires_at > ?", userID, true, now).
		Order("expires_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeactivateByCodeAndUser flips an active coupon off. Scoping the update to
// is_active = true keeps repeated confirmations from reporting a change.
func (r *Repository) DeactivateByCodeAndUser(ctx context.Context, code string, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ? AND (user_id = ? OR user_id IS NULL) AND is_active = ?", code, userID, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
