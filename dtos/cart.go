package dtos

// Quantities arrive as JSON numbers and are normalized by the cart, so they are
// decoded as float64 and never rejected for being fractional or out of range.

type AddCartItemRequest struct {
	ProductID    string   `json:"productId" binding:"required"`
	BoardVariant string   `json:"boardVariant"`
	Quantity     *float64 `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

type UpdateVariantRequest struct {
	BoardVariant string `json:"boardVariant" binding:"required"`
}
