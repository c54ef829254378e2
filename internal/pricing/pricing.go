package pricing

import (
	"fmt"

	"github.com/google/uuid"
)

// Line is one priced cart entry. UnitPriceCents always comes from the live
// catalog, never from client input.
type Line struct {
	ProductID      uuid.UUID
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// Quote is the deterministic pricing result for one checkout attempt.
type Quote struct {
	Lines              []Line
	OriginalTotalCents int64
	DiscountCents      int64
	FinalTotalCents    int64
	DiscountPercent    int
}

// Price computes the order totals in integer cents. discountPercent of zero
// means no coupon. The discount is half-up rounded, subtracted once from the
// order total rather than per line.
func Price(lines []Line, discountPercent int) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, fmt.Errorf("no lines to price")
	}
	if discountPercent < 0 || discountPercent > 100 {
		return Quote{}, fmt.Errorf("discount percent %d out of range", discountPercent)
	}

	var original int64
	for i, line := range lines {
		if line.Quantity <= 0 {
			return Quote{}, fmt.Errorf("line %d: quantity must be positive", i)
		}
		if line.UnitPriceCents < 0 {
			return Quote{}, fmt.Errorf("line %d: negative unit price", i)
		}
		original += line.UnitPriceCents * int64(line.Quantity)
	}

	discount := roundHalfUp(original*int64(discountPercent), 100)
	if discount > original {
		discount = original
	}

	return Quote{
		Lines:              lines,
		OriginalTotalCents: original,
		DiscountCents:      discount,
		FinalTotalCents:    original - discount,
		DiscountPercent:    discountPercent,
	}, nil
}

// roundHalfUp divides numerator by denominator rounding .5 away from zero.
// Inputs are never negative here.
func roundHalfUp(numerator, denominator int64) int64 {
	return (numerator + denominator/2) / denominator
}
