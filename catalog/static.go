package catalog

import "eastside-storefront/models"

var boardSpecs = models.ProductSpecs{
	Camber:    "1 1/2 inches",
	Concave:   "3/16 inches",
	Wheelbase: "37 inches",
}

// StaticProducts is the seed catalog used when no Firestore project is configured.
func StaticProducts() []models.Product {
	return []models.Product{
		{
			ID:            "1",
			Name:          "The Kahala",
			Slug:          "the-kahala",
			Description:   "Our flagship board, handcrafted with precision and stained with love. Perfect for smooth pumping and carving through the streets of Kapaa.",
			CompletePrice: 275.00,
			DeckOnlyPrice: 175.00,
			Image:         "/image0.jpeg",
			Images:        []string{"/image0.jpeg"},
			Specs:         boardSpecs,
			Components: models.ProductComponents{
				Trucks:   "180mm Kahuna Creation trucks",
				Wheels:   "Kahuna Creation 69mm 82A wheels",
				Bearings: "APEC 7 bearings",
			},
			Features: []string{"7-Layer Canadian Maple", "Hand-painted", "Made in USA"},
		},
		{
			ID:            "2",
			Name:          "The Sweet Spot",
			Slug:          "the-sweet-spot",
			Description:   "Named for that perfect balance point. This board delivers exceptional control and smooth rides for your daily pumping pleasure.",
			CompletePrice: 275.00,
			DeckOnlyPrice: 175.00,
			Image:         "/image1.jpeg",
			Images:        []string{"/image1.jpeg"},
			Specs:         boardSpecs,
			Components: models.ProductComponents{
				Wheels:   "Ghost Phathoms 70mm 78A wheels",
				Bearings: "Ghost APEC 7 bearings",
			},
			Features: []string{"7-Layer Canadian Maple", "Hand-stained", "Made in USA"},
		},
		{
			ID:            "3",
			Name:          "The Ka Pahu",
			Slug:          "the-ka-pahu",
			Description:   "Inspired by the traditional Hawaiian drum, this board brings rhythm to your ride. Feel the beat of the pavement beneath you.",
			CompletePrice: 275.00,
			DeckOnlyPrice: 175.00,
			Image:         "/image2.jpeg",
			Images:        []string{"/image2.jpeg"},
			Specs:         boardSpecs,
			Components: models.ProductComponents{
				Wheels:   "Ghost Phathoms 70mm 78A wheels",
				Bearings: "Ghost APEC 7 bearings",
			},
			Features: []string{"7-Layer Canadian Maple", "Hand-painted", "Made in USA"},
		},
		{
			ID:            "4",
			Name:          "Pau",
			Slug:          "pau",
			Description:   "Hawaiian for \"finished\" or \"done\" - but your ride is just beginning. A versatile board that handles everything with ease.",
			CompletePrice: 275.00,
			DeckOnlyPrice: 175.00,
			Image:         "/image3.jpeg",
			Images:        []string{"/image3.jpeg"},
			Specs:         boardSpecs,
			Components: models.ProductComponents{
				Wheels:   "Ghost Phathoms 70mm 78A wheels",
				Bearings: "Ghost APEC 7 bearings",
			},
			Features: []string{"7-Layer Canadian Maple", "Hand-stained", "Made in USA"},
		},
		{
			ID:            "5",
			Name:          "Dakine",
			Slug:          "dakine",
			Description:   "Hawaiian slang for \"the best.\" And that's exactly what this board is - the best companion for your pumping adventures.",
			CompletePrice: 275.00,
			DeckOnlyPrice: 175.00,
			Image:         "/image4.jpeg",
			Images:        []string{"/image4.jpeg"},
			Specs:         boardSpecs,
			Components: models.ProductComponents{
				Wheels:   "Ghost Phathoms 70mm 78A wheels",
				Bearings: "Ghost APEC 7 bearings",
			},
			Features: []string{"7-Layer Canadian Maple", "Hand-painted", "Made in USA"},
		},
	}
}
