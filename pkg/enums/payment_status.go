package enums

// PaymentStatus mirrors the payment provider's checkout session payment state.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsPaid reports whether the session has been settled by the provider.
func (p PaymentStatus) IsPaid() bool {
	return p == PaymentStatusPaid
}
