package models

import "strings"

// BoardVariant selects which of a product's two prices applies to a line item.
type BoardVariant string

const (
	VariantComplete BoardVariant = "complete"
	VariantDeckOnly BoardVariant = "deck-only"

	// legacyVariantDeck is how older storefront snapshots spelled deck-only.
	legacyVariantDeck = "deck"
)

// ParseBoardVariant accepts the canonical variant names plus the legacy "deck" alias.
func ParseBoardVariant(s string) (BoardVariant, bool) {
	switch strings.TrimSpace(s) {
	case string(VariantComplete):
		return VariantComplete, true
	case string(VariantDeckOnly), legacyVariantDeck:
		return VariantDeckOnly, true
	}
	return "", false
}

func (v BoardVariant) Valid() bool {
	return v == VariantComplete || v == VariantDeckOnly
}

// IdentityKey is the uniqueness key of a cart line: one line per (product, variant).
func IdentityKey(productID string, variant BoardVariant) string {
	return productID + "-" + string(variant)
}

// CartLineItem is a product snapshot taken when it was added to the cart.
// Both prices are kept so a variant switch never needs the catalog again.
type CartLineItem struct {
	IdentityKey       string       `json:"identityKey"`
	ProductID         string       `json:"productId"`
	ProductName       string       `json:"productName"`
	ProductSlug       string       `json:"productSlug"`
	ImageURL          string       `json:"imageUrl"`
	BoardVariant      BoardVariant `json:"boardVariant"`
	Quantity          int          `json:"quantity"`
	UnitPriceComplete float64      `json:"unitPriceComplete"`
	UnitPriceDeckOnly float64      `json:"unitPriceDeckOnly"`
}

// UnitPrice returns the price matching the item's current variant.
func (i CartLineItem) UnitPrice() float64 {
	if i.BoardVariant == VariantComplete {
		return i.UnitPriceComplete
	}
	return i.UnitPriceDeckOnly
}
