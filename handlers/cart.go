package handlers

import (
	"encoding/json"
	"net/http"

	"eastside-storefront/cart"
	"eastside-storefront/catalog"
	"eastside-storefront/dtos"
	"eastside-storefront/middleware"
	"eastside-storefront/models"
	"eastside-storefront/utils"

	"github.com/gin-gonic/gin"
)

const invalidVariant = "boardVariant must be one of: complete, deck-only"

type CartHandler struct {
	Catalog catalog.Source
}

type cartResponse struct {
	Items     []models.CartLineItem `json:"items"`
	Subtotal  json.Number           `json:"subtotal"`
	ItemCount int                   `json:"itemCount"`
	State     cart.State            `json:"state"`
}

func respondCart(c *gin.Context, status int, store *cart.Store) {
	view := store.Snapshot()
	c.JSON(status, cartResponse{
		Items:     view.Items,
		Subtotal:  json.Number(view.Subtotal.StringFixed(2)),
		ItemCount: view.ItemCount,
		State:     view.State,
	})
}

func (h *CartHandler) GetCart(c *gin.Context) {
	respondCart(c, http.StatusOK, middleware.MustCart(c))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req dtos.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	variant := models.VariantComplete
	if req.BoardVariant != "" {
		v, ok := models.ParseBoardVariant(req.BoardVariant)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidVariant})
			return
		}
		variant = v
	}

	product, ok := h.Catalog.ProductByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = cart.QuantityDelta(*req.Quantity)
	}

	store := middleware.MustCart(c)
	store.AddItem(product, variant, quantity)
	respondCart(c, http.StatusOK, store)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req dtos.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	store := middleware.MustCart(c)
	store.UpdateQuantity(c.Param("key"), cart.NormalizeQuantity(*req.Quantity))
	respondCart(c, http.StatusOK, store)
}

func (h *CartHandler) UpdateVariant(c *gin.Context) {
	var req dtos.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	variant, ok := models.ParseBoardVariant(req.BoardVariant)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidVariant})
		return
	}

	store := middleware.MustCart(c)
	store.UpdateBoardVariant(c.Param("key"), variant)
	respondCart(c, http.StatusOK, store)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := middleware.MustCart(c)
	store.RemoveItem(c.Param("key"))
	respondCart(c, http.StatusOK, store)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	store := middleware.MustCart(c)
	store.Clear()
	respondCart(c, http.StatusOK, store)
}
