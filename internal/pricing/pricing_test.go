package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(unitCents int64, qty int) Line {
	return Line{ProductID: uuid.New(), Name: "item", UnitPriceCents: unitCents, Quantity: qty}
}

func TestPriceWithoutDiscount(t *testing.T) {
	quote, err := Price([]Line{line(5500, 2), line(1200, 1)}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12200), quote.OriginalTotalCents)
	assert.Equal(t, int64(0), quote.DiscountCents)
	assert.Equal(t, int64(12200), quote.FinalTotalCents)
}

func TestPriceTenPercentOff(t *testing.T) {
	quote, err := Price([]Line{line(12500, 2)}, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), quote.OriginalTotalCents)
	assert.Equal(t, int64(2500), quote.DiscountCents)
	assert.Equal(t, int64(22500), quote.FinalTotalCents)
}

func TestPriceRoundsHalfUp(t *testing.T) {
	// 15% of 1010 = 151.5 -> 152
	quote, err := Price([]Line{line(1010, 1)}, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(152), quote.DiscountCents)
	assert.Equal(t, int64(858), quote.FinalTotalCents)

	// 33% of 100 = 33.0 -> 33
	quote, err = Price([]Line{line(100, 1)}, 33)
	require.NoError(t, err)
	assert.Equal(t, int64(33), quote.DiscountCents)
}

func TestPriceFullDiscount(t *testing.T) {
	quote, err := Price([]Line{line(999, 3)}, 100)
	require.NoError(t, err)
	assert.Equal(t, quote.OriginalTotalCents, quote.DiscountCents)
	assert.Equal(t, int64(0), quote.FinalTotalCents)
}

func TestPriceRejectsBadInput(t *testing.T) {
	_, err := Price(nil, 0)
	assert.Error(t, err)

	_, err = Price([]Line{line(100, 0)}, 0)
	assert.Error(t, err)

	_, err = Price([]Line{line(-1, 1)}, 0)
	assert.Error(t, err)

	_, err = Price([]Line{line(100, 1)}, 101)
	assert.Error(t, err)
}

func TestPriceTotalsAlwaysReconcile(t *testing.T) {
	for pct := 0; pct <= 100; pct++ {
		quote, err := Price([]Line{line(3333, 3), line(17, 7)}, pct)
		require.NoError(t, err)
		assert.Equal(t, quote.OriginalTotalCents, quote.DiscountCents+quote.FinalTotalCents)
	}
}
