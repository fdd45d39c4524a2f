package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"eastside-storefront/models"
)

var errNotASequence = errors.New("snapshot is not a JSON array")

// snapshotRecord mirrors models.CartLineItem with pointers so missing fields are detectable.
type snapshotRecord struct {
	IdentityKey       string   `json:"identityKey"`
	ProductID         string   `json:"productId"`
	ProductName       string   `json:"productName"`
	ProductSlug       string   `json:"productSlug"`
	ImageURL          string   `json:"imageUrl"`
	BoardVariant      string   `json:"boardVariant"`
	Quantity          *float64 `json:"quantity"`
	UnitPriceComplete *float64 `json:"unitPriceComplete"`
	UnitPriceDeckOnly *float64 `json:"unitPriceDeckOnly"`
}

// decodeSnapshot parses a stored cart. Any value that is not an ordered sequence of
// line-item-shaped records is rejected as a whole.
func decodeSnapshot(raw []byte) ([]models.CartLineItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotASequence
	}

	var records []snapshotRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	items := make([]models.CartLineItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		item, err := rec.toLineItem()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[item.IdentityKey]; dup {
			return nil, fmt.Errorf("record %d: duplicate identity key %q", i, item.IdentityKey)
		}
		seen[item.IdentityKey] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func (r snapshotRecord) toLineItem() (models.CartLineItem, error) {
	if r.ProductID == "" {
		return models.CartLineItem{}, errors.New("missing productId")
	}
	variant, ok := models.ParseBoardVariant(r.BoardVariant)
	if !ok {
		return models.CartLineItem{}, fmt.Errorf("unknown boardVariant %q", r.BoardVariant)
	}
	if r.Quantity == nil {
		return models.CartLineItem{}, errors.New("missing quantity")
	}
	if r.UnitPriceComplete == nil || r.UnitPriceDeckOnly == nil {
		return models.CartLineItem{}, errors.New("missing unit price")
	}
	if *r.UnitPriceComplete < 0 || *r.UnitPriceDeckOnly < 0 {
		return models.CartLineItem{}, errors.New("negative unit price")
	}
	return models.CartLineItem{
		IdentityKey:       models.IdentityKey(r.ProductID, variant),
		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		ProductSlug:       r.ProductSlug,
		ImageURL:          r.ImageURL,
		BoardVariant:      variant,
		Quantity:          NormalizeQuantity(*r.Quantity),
		UnitPriceComplete: *r.UnitPriceComplete,
		UnitPriceDeckOnly: *r.UnitPriceDeckOnly,
	}, nil
}

func encodeSnapshot(items []models.CartLineItem) ([]byte, error) {
	if items == nil {
		items = []models.CartLineItem{}
	}
	return json.Marshal(items)
}
