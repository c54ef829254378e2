package coupons

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/pkg/db/models"
	pkgerrors "github.com/emberworks/storefront-backend/pkg/errors"
)

const (
	rewardCodePrefix = "GIFT"
	rewardCodeDigits = 6
)

// Service exposes coupon validation, listing, and minting.
type Service interface {
	Validate(ctx context.Context, userID uuid.UUID, code string) (*CouponDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]CouponDTO, error)
	Create(ctx context.Context, req CreateCouponRequest) (*CouponDTO, error)
	MintReward(ctx context.Context, userID uuid.UUID, discountPercent int, ttl time.Duration) (*CouponDTO, error)
	Redeem(ctx context.Context, userID uuid.UUID, code string) error
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// ServiceParams groups dependencies for the coupon service.
type ServiceParams struct {
	Repo *Repository
	Now  func() time.Time
}

// NewService builds a coupon service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("coupon repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

// Validate checks that the code exists, is active, is unexpired, and belongs
// to the shopper (or to nobody). All failure modes surface the same public
// message so codes cannot be probed.
func (s *service) Validate(ctx context.Context, userID uuid.UUID, code string) (*CouponDTO, error) {
	coupon, err := s.lookup(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*coupon)
	return &dto, nil
}

// ListMine returns the shopper's usable coupons.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]CouponDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListActiveForUser(ctx, userID, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	dtos := make([]CouponDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toDTO(row))
	}
	return dtos, nil
}

// Create mints an arbitrary coupon. Admin only; the route layer enforces it.
func (s *service) Create(ctx context.Context, req CreateCouponRequest) (*CouponDTO, error) {
	code := normalizeCode(req.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if req.DiscountPercent < 1 || req.DiscountPercent > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 1 and 100")
	}
	if !req.ExpiresAt.After(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry must be in the future")
	}

	coupon := &models.Coupon{
		ID:              uuid.New(),
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		UserID:          req.UserID,
		IsActive:        true,
		ExpiresAt:       req.ExpiresAt,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	dto := toDTO(*coupon)
	return &dto, nil
}

// MintReward issues a personal thank-you coupon after a qualifying order.
func (s *service) MintReward(ctx context.Context, userID uuid.UUID, discountPercent int, ttl time.Duration) (*CouponDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if discountPercent < 1 || discountPercent > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 1 and 100")
	}
	if ttl <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ttl must be positive")
	}

	owner := userID
	coupon := &models.Coupon{
		ID:              uuid.New(),
		Code:            newRewardCode(),
		DiscountPercent: discountPercent,
		UserID:          &owner,
		IsActive:        true,
		ExpiresAt:       s.now().Add(ttl),
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reward coupon")
	}
	dto := toDTO(*coupon)
	return &dto, nil
}

// Redeem deactivates a coupon after its consuming order is durably persisted.
// Yields no error when the coupon was already consumed by an earlier attempt.
func (s *service) Redeem(ctx context.Context, userID uuid.UUID, code string) error {
	normalized := normalizeCode(code)
	if normalized == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if _, err := s.repo.DeactivateByCodeAndUser(ctx, normalized, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate coupon")
	}
	return nil
}

func (s *service) lookup(ctx context.Context, userID uuid.UUID, code string) (*models.Coupon, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	normalized := normalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}

	coupon, err := s.repo.FindByCodeForUser(ctx, normalized, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired coupon")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	if !coupon.IsActive || !coupon.ExpiresAt.After(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired coupon")
	}
	return coupon, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func newRewardCode() string {
	max := big.NewInt(1)
	for i := 0; i < rewardCodeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand failing means the platform is broken; fall back to a uuid tail
		return rewardCodePrefix + strings.ToUpper(uuid.NewString()[:rewardCodeDigits])
	}
	return fmt.Sprintf("%s%0*d", rewardCodePrefix, rewardCodeDigits, n)
}
