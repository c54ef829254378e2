package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emberworks/storefront-backend/internal/cart"
	"github.com/emberworks/storefront-backend/internal/coupons"
	"github.com/emberworks/storefront-backend/internal/orders"
	"github.com/emberworks/storefront-backend/internal/pricing"
	"github.com/emberworks/storefront-backend/pkg/config"
	"github.com/emberworks/storefront-backend/pkg/db/models"
	pkgerrors "github.com/emberworks/storefront-backend/pkg/errors"
	"github.com/emberworks/storefront-backend/pkg/logger"
)

// Service drives hosted checkout: session creation before payment and order
// materialization after the provider redirect.
type Service interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req CreateSessionRequest) (*CreateSessionResponse, error)
	Confirm(ctx context.Context, userID uuid.UUID, req ConfirmRequest) (*ConfirmResponse, error)
}

type cartReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*cart.CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type couponManager interface {
	Validate(ctx context.Context, userID uuid.UUID, code string) (*coupons.CouponDTO, error)
	Redeem(ctx context.Context, userID uuid.UUID, code string) error
	MintReward(ctx context.Context, userID uuid.UUID, discountPercent int, ttl time.Duration) (*coupons.CouponDTO, error)
}

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Order, error)
}

type service struct {
	gateway     PaymentGateway
	cartSvc     cartReader
	couponSvc   couponManager
	orderRepo   orderStore
	checkoutCfg config.CheckoutConfig
	clientURL   string
	logg        *logger.Logger
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Gateway        PaymentGateway
	CartService    cartReader
	CouponService  couponManager
	OrderRepo      orderStore
	CheckoutConfig config.CheckoutConfig
	ClientURL      string
	Logger         *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway is required")
	}
	if params.CartService == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if params.CouponService == nil {
		return nil, fmt.Errorf("coupon service is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		gateway:     params.Gateway,
		cartSvc:     params.CartService,
		couponSvc:   params.CouponService,
		orderRepo:   params.OrderRepo,
		checkoutCfg: params.CheckoutConfig,
		clientURL:   params.ClientURL,
		logg:        params.Logger,
	}, nil
}

// CreateSession re-prices the shopper's cart from the live catalog, applies
// the coupon when one is supplied, and opens a provider-hosted session whose
// metadata snapshots everything Confirm needs to materialize the order.
// An empty cart or an unusable coupon aborts the attempt outright.
func (s *service) CreateSession(ctx context.Context, userID uuid.UUID, req CreateSessionRequest) (*CreateSessionResponse, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	shopperCart, err := s.cartSvc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(shopperCart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]pricing.Line, 0, len(shopperCart.Items))
	for _, item := range shopperCart.Items {
		lines = append(lines, pricing.Line{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	discountPct := 0
	couponCode := ""
	if req.CouponCode != "" {
		coupon, err := s.couponSvc.Validate(ctx, userID, req.CouponCode)
		if err != nil {
			return nil, err
		}
		discountPct = coupon.DiscountPercent
		couponCode = coupon.Code
	}

	quote, err := pricing.Price(lines, discountPct)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price cart")
	}

	items := make([]metadataItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		items = append(items, metadataItem{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}
	metadata, err := encodeSnapshot(sessionSnapshot{
		UserID:             userID,
		CouponCode:         couponCode,
		OriginalTotalCents: quote.OriginalTotalCents,
		DiscountCents:      quote.DiscountCents,
		Items:              items,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session metadata")
	}

	sessionLines := make([]SessionLine, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		sessionLines = append(sessionLines, SessionLine{
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
		})
	}

	created, err := s.gateway.CreateSession(ctx, CreateSessionInput{
		Lines:       sessionLines,
		DiscountPct: quote.DiscountPercent,
		SuccessURL:  s.clientURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.clientURL + "/cart",
		Metadata:    metadata,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment session")
	}

	return &CreateSessionResponse{
		SessionID:          created.ID,
		URL:                created.URL,
		OriginalTotalCents: quote.OriginalTotalCents,
		DiscountCents:      quote.DiscountCents,
		FinalTotalCents:    quote.FinalTotalCents,
	}, nil
}

// Confirm materializes the order for a settled checkout session. The
// operation is idempotent per session: whichever confirmation wins the
// insert race owns the side effects, every other one returns the winner's
// order. The order is rebuilt solely from the session metadata snapshot;
// the cart may have changed since and is not consulted.
func (s *service) Confirm(ctx context.Context, userID uuid.UUID, req ConfirmRequest) (*ConfirmResponse, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if req.SessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	if existing, err := s.orderRepo.FindByCheckoutSessionID(ctx, req.SessionID); err == nil {
		return &ConfirmResponse{Order: orders.ToDTO(existing), Created: false}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up existing order")
	}

	session, err := s.gateway.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment session")
	}

	if !session.Paid() {
		return nil, pkgerrors.New(pkgerrors.CodePaymentIncomplete, "payment not completed").
			WithDetails(map[string]string{"payment_status": session.PaymentStatus.String()})
	}

	snapshot, err := decodeSnapshot(session.Metadata)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode session metadata")
	}
	if snapshot.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "session belongs to another user")
	}

	order := &models.Order{
		ID:                uuid.New(),
		UserID:            snapshot.UserID,
		TotalCents:        session.AmountTotalCents,
		CheckoutSessionID: session.ID,
	}
	if snapshot.CouponCode != "" {
		code := snapshot.CouponCode
		order.CouponCode = &code
	}
	for _, item := range snapshot.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:             uuid.New(),
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	// The client may abandon the redirect mid-flight; once the payment is
	// settled the order must land regardless.
	persistCtx := context.WithoutCancel(ctx)

	if err := s.orderRepo.Create(persistCtx, order); err != nil {
		if errors.Is(err, orders.ErrDuplicateSession) {
			winner, findErr := s.orderRepo.FindByCheckoutSessionID(persistCtx, session.ID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "load winning order")
			}
			return &ConfirmResponse{Order: orders.ToDTO(winner), Created: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	reward := s.runPostPersist(persistCtx, snapshot, order)

	return &ConfirmResponse{
		Order:        orders.ToDTO(order),
		Created:      true,
		RewardCoupon: reward,
	}, nil
}

// runPostPersist performs the side effects owned by the winning
// confirmation. The order is already durable; failures here are logged and
// never unwind it.
func (s *service) runPostPersist(ctx context.Context, snapshot sessionSnapshot, order *models.Order) *coupons.CouponDTO {
	ctx = s.logg.WithSessionID(ctx, order.CheckoutSessionID)

	if snapshot.CouponCode != "" {
		if err := s.couponSvc.Redeem(ctx, snapshot.UserID, snapshot.CouponCode); err != nil {
			s.logg.Error(ctx, "deactivating redeemed coupon failed", err)
		}
	}

	if err := s.cartSvc.Clear(ctx, snapshot.UserID); err != nil {
		s.logg.Error(ctx, "clearing cart after checkout failed", err)
	}

	if snapshot.OriginalTotalCents < s.checkoutCfg.RewardThresholdCents {
		return nil
	}
	ttl := time.Duration(s.checkoutCfg.RewardTTLDays) * 24 * time.Hour
	reward, err := s.couponSvc.MintReward(ctx, snapshot.UserID, s.checkoutCfg.RewardPercent, ttl)
	if err != nil {
		s.logg.Error(ctx, "minting reward coupon failed", err)
		return nil
	}
	return reward
}
