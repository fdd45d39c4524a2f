package dtos

// CustomOrderRequest is the custom board inquiry form.
type CustomOrderRequest struct {
	Name            string `json:"name" binding:"required,max=120"`
	Email           string `json:"email" binding:"required,email,max=254"`
	Phone           string `json:"phone" binding:"max=40"`
	BoardType       string `json:"boardType" binding:"required,oneof=complete deck-only deck"`
	ColorPreference string `json:"colorPreference" binding:"max=200"`
	DesignIdeas     string `json:"designIdeas" binding:"max=4000"`
	Message         string `json:"message" binding:"max=4000"`
}

type CustomOrderResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}
