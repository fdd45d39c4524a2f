package handlers

import (
	"net/http"

	"eastside-storefront/catalog"

	"github.com/gin-gonic/gin"
)

const catalogUnavailable = "Unable to load products."

type ProductHandler struct {
	Catalog catalog.Source
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	products := h.Catalog.Products()
	if len(products) == 0 && h.Catalog.Err() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": catalogUnavailable})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.Catalog.ProductBySlug(c.Param("slug"))
	if !ok {
		if h.Catalog.Err() != nil && len(h.Catalog.Products()) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": catalogUnavailable})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
