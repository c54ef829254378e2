package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/coupon"

	"github.com/emberworks/storefront-backend/pkg/enums"
	pkgstripe "github.com/emberworks/storefront-backend/pkg/stripe"
)

// PaymentSession is the provider-neutral view of a hosted checkout session.
type PaymentSession struct {
	ID               string
	URL              string
	PaymentStatus    enums.PaymentStatus
	AmountTotalCents int64
	Metadata         map[string]string
}

// Paid reports whether the provider settled the payment.
func (s PaymentSession) Paid() bool {
	return s.PaymentStatus.IsPaid()
}

// SessionLine is one display line sent to the payment provider.
type SessionLine struct {
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// CreateSessionInput captures everything the provider needs to host a
// checkout page.
type CreateSessionInput struct {
	Lines         []SessionLine
	DiscountPct   int
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
	CustomerEmail string
}

// PaymentGateway exposes the subset of payment provider operations required
// by the checkout service.
type PaymentGateway interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*PaymentSession, error)
	GetSession(ctx context.Context, sessionID string) (*PaymentSession, error)
}

type stripeGateway struct{}

// NewStripeGateway wraps the initialized Stripe client so the checkout
// service can be tested against a fake.
func NewStripeGateway(api *pkgstripe.Client) PaymentGateway {
	if api == nil {
		return nil
	}
	return &stripeGateway{}
}

func (g *stripeGateway) CreateSession(ctx context.Context, input CreateSessionInput) (*PaymentSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.Lines))
	for _, line := range input.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(line.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(line.UnitPriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
	}
	params.Context = ctx
	if input.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(input.CustomerEmail)
	}
	for key, value := range input.Metadata {
		params.AddMetadata(key, value)
	}

	if input.DiscountPct > 0 {
		// single-use provider coupon scoped to this session
		couponParams := &stripe.CouponParams{
			PercentOff:     stripe.Float64(float64(input.DiscountPct)),
			Duration:       stripe.String(string(stripe.CouponDurationOnce)),
			MaxRedemptions: stripe.Int64(1),
		}
		couponParams.Context = ctx
		providerCoupon, err := coupon.New(couponParams)
		if err != nil {
			return nil, err
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(providerCoupon.ID)},
		}
	}

	created, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(created), nil
}

func (g *stripeGateway) GetSession(ctx context.Context, sessionID string) (*PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	loaded, err := session.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(loaded), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *PaymentSession {
	return &PaymentSession{
		ID:               s.ID,
		URL:              s.URL,
		PaymentStatus:    enums.PaymentStatus(s.PaymentStatus),
		AmountTotalCents: s.AmountTotal,
		Metadata:         s.Metadata,
	}
}
