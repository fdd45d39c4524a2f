package catalog

import (
	"math"
	"strconv"
	"strings"

	"eastside-storefront/models"
)

// DecodeProduct turns a products-collection document into a Product, filling the
// defaults the storefront relies on when an admin left fields out.
func DecodeProduct(docID string, data map[string]any) models.Product {
	p := models.Product{
		ID:            stringField(data, "id"),
		Name:          stringField(data, "name"),
		Slug:          stringField(data, "slug"),
		Description:   stringField(data, "description"),
		CompletePrice: numberField(data, "completePrice"),
		DeckOnlyPrice: numberField(data, "deckOnlyPrice"),
		Image:         stringField(data, "image"),
		Images:        stringList(data["images"]),
		Features:      stringList(data["features"]),
	}
	if p.ID == "" {
		p.ID = docID
	}

	_, hasImages := data["images"].([]any)
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	if !hasImages && p.Image != "" {
		p.Images = []string{p.Image}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	if specs, ok := data["specs"].(map[string]any); ok {
		p.Specs = models.ProductSpecs{
			Camber:    stringField(specs, "camber"),
			Concave:   stringField(specs, "concave"),
			Wheelbase: stringField(specs, "wheelbase"),
		}
	}
	if components, ok := data["components"].(map[string]any); ok {
		p.Components = models.ProductComponents{
			Trucks:   stringField(components, "trucks"),
			Wheels:   stringField(components, "wheels"),
			Bearings: stringField(components, "bearings"),
		}
	}
	return p
}

func stringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func numberField(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

func stringList(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
