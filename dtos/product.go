package dtos

import (
	"strings"

	"eastside-storefront/models"
	"eastside-storefront/utils"
)

// ProductPayload mirrors the admin product form. Features may be sent either as a
// list or as one newline/comma separated string.
type ProductPayload struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Slug          string   `json:"slug" binding:"max=200"`
	Description   string   `json:"description" binding:"max=5000"`
	CompletePrice float64  `json:"completePrice" binding:"gte=0"`
	DeckOnlyPrice float64  `json:"deckOnlyPrice" binding:"gte=0"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Camber        string   `json:"camber"`
	Concave       string   `json:"concave"`
	Wheelbase     string   `json:"wheelbase"`
	Trucks        string   `json:"trucks"`
	Wheels        string   `json:"wheels"`
	Bearings      string   `json:"bearings"`
	Features      []string `json:"features"`
	FeaturesText  string   `json:"featuresText"`
}

// ToProduct normalizes the form into the document shape written by the product functions.
func (p ProductPayload) ToProduct() models.Product {
	name := strings.TrimSpace(p.Name)
	slug := strings.TrimSpace(p.Slug)
	if slug == "" {
		slug = utils.ToSlug(name)
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	image := strings.TrimSpace(p.Image)
	if len(images) > 0 {
		image = images[0]
	} else if image != "" {
		images = []string{image}
	}

	features := utils.ParseFeatures(p.FeaturesText)
	for _, f := range p.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	return models.Product{
		Name:          name,
		Slug:          slug,
		Description:   strings.TrimSpace(p.Description),
		CompletePrice: p.CompletePrice,
		DeckOnlyPrice: p.DeckOnlyPrice,
		Image:         image,
		Images:        images,
		Specs: models.ProductSpecs{
			Camber:    strings.TrimSpace(p.Camber),
			Concave:   strings.TrimSpace(p.Concave),
			Wheelbase: strings.TrimSpace(p.Wheelbase),
		},
		Components: models.ProductComponents{
			Trucks:   strings.TrimSpace(p.Trucks),
			Wheels:   strings.TrimSpace(p.Wheels),
			Bearings: strings.TrimSpace(p.Bearings),
		},
		Features: features,
	}
}

type ImageImportRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type ImageDeleteRequest struct {
	URL string `json:"url" binding:"required"`
}

type ImageResponse struct {
	URL string `json:"url"`
}
