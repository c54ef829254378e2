package checkout

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Metadata keys attached to the provider session at creation time. The
// confirmation path rebuilds the order exclusively from these values, so the
// set below is the complete source of truth for an order's contents.
const (
	metaUserID        = "user_id"
	metaCouponCode    = "coupon_code"
	metaOriginalTotal = "original_total_cents"
	metaDiscount      = "discount_cents"
	metaItems         = "items"
)

// metadataItem is the compact per-line snapshot stored with the provider.
type metadataItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// sessionSnapshot is the decoded form of the session metadata.
type sessionSnapshot struct {
	UserID             uuid.UUID
	CouponCode         string
	OriginalTotalCents int64
	DiscountCents      int64
	Items              []metadataItem
}

func encodeSnapshot(snapshot sessionSnapshot) (map[string]string, error) {
	encodedItems, err := json.Marshal(snapshot.Items)
	if err != nil {
		return nil, fmt.Errorf("encoding item snapshot: %w", err)
	}
	meta := map[string]string{
		metaUserID:        snapshot.UserID.String(),
		metaOriginalTotal: strconv.FormatInt(snapshot.OriginalTotalCents, 10),
		metaDiscount:      strconv.FormatInt(snapshot.DiscountCents, 10),
		metaItems:         string(encodedItems),
	}
	if snapshot.CouponCode != "" {
		meta[metaCouponCode] = snapshot.CouponCode
	}
	return meta, nil
}

func decodeSnapshot(meta map[string]string) (sessionSnapshot, error) {
	if len(meta) == 0 {
		return sessionSnapshot{}, fmt.Errorf("session carries no metadata")
	}

	userID, err := uuid.Parse(meta[metaUserID])
	if err != nil {
		return sessionSnapshot{}, fmt.Errorf("parsing user id: %w", err)
	}

	original, err := strconv.ParseInt(meta[metaOriginalTotal], 10, 64)
	if err != nil {
		return sessionSnapshot{}, fmt.Errorf("parsing original total: %w", err)
	}

	discount, err := strconv.ParseInt(meta[metaDiscount], 10, 64)
	if err != nil {
		return sessionSnapshot{}, fmt.Errorf("parsing discount: %w", err)
	}

	var items []metadataItem
	if err := json.Unmarshal([]byte(meta[metaItems]), &items); err != nil {
		return sessionSnapshot{}, fmt.Errorf("parsing item snapshot: %w", err)
	}
	if len(items) == 0 {
		return sessionSnapshot{}, fmt.Errorf("item snapshot is empty")
	}

	return sessionSnapshot{
		UserID:             userID,
		CouponCode:         meta[metaCouponCode],
		OriginalTotalCents: original,
		DiscountCents:      discount,
		Items:              items,
	}, nil
}
