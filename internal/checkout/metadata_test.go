package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	original := sessionSnapshot{
		UserID:             uuid.New(),
		CouponCode:         "SAVE10",
		OriginalTotalCents: 25000,
		DiscountCents:      2500,
		Items: []metadataItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 12500},
		},
	}

	meta, err := encodeSnapshot(original)
	require.NoError(t, err)

	decoded, err := decodeSnapshot(meta)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestSnapshotOmitsEmptyCouponKey(t *testing.T) {
	meta, err := encodeSnapshot(sessionSnapshot{
		UserID:             uuid.New(),
		OriginalTotalCents: 1000,
		Items:              []metadataItem{{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 1000}},
	})
	require.NoError(t, err)
	_, present := meta[metaCouponCode]
	assert.False(t, present)

	decoded, err := decodeSnapshot(meta)
	require.NoError(t, err)
	assert.Empty(t, decoded.CouponCode)
}

func TestDecodeSnapshotRejectsBadMetadata(t *testing.T) {
	cases := []struct {
		name string
		meta map[string]string
	}{
		{"empty", nil},
		{"bad user id", map[string]string{metaUserID: "nope"}},
		{"missing totals", map[string]string{metaUserID: uuid.NewString()}},
		{"bad items", map[string]string{
			metaUserID:        uuid.NewString(),
			metaOriginalTotal: "1000",
			metaDiscount:      "0",
			metaItems:         "{",
		}},
		{"empty items", map[string]string{
			metaUserID:        uuid.NewString(),
			metaOriginalTotal: "1000",
			metaDiscount:      "0",
			metaItems:         "[]",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeSnapshot(tc.meta)
			assert.Error(t, err)
		})
	}
}
