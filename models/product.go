package models

// ProductSpecs holds the free-text deck geometry fields.
type ProductSpecs struct {
	Camber    string `json:"camber"`
	Concave   string `json:"concave"`
	Wheelbase string `json:"wheelbase"`
}

// ProductComponents lists the parts shipped with a complete board. Trucks are optional.
type ProductComponents struct {
	Trucks   string `json:"trucks,omitempty"`
	Wheels   string `json:"wheels"`
	Bearings string `json:"bearings"`
}

// Product is a catalog entry as read from the live products collection.
type Product struct {
	ID            string            `json:"id,omitempty"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description"`
	CompletePrice float64           `json:"completePrice"`
	DeckOnlyPrice float64           `json:"deckOnlyPrice"`
	Image         string            `json:"image"`
	Images        []string          `json:"images"`
	Specs         ProductSpecs      `json:"specs"`
	Components    ProductComponents `json:"components"`
	Features      []string          `json:"features"`
}

// PrimaryImage returns the first gallery image, falling back to Image.
func (p Product) PrimaryImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return p.Image
}
