package handlers

import (
	"net/http"

	"eastside-storefront/dtos"
	"eastside-storefront/logger"
	"eastside-storefront/models"
	"eastside-storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomOrderHandler accepts custom board inquiries. Nothing is stored or sent;
// the request is validated, logged and acknowledged.
type CustomOrderHandler struct {
	Log *logger.Logger
}

func (h *CustomOrderHandler) Submit(c *gin.Context) {
	var req dtos.CustomOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	boardType, _ := models.ParseBoardVariant(req.BoardType)
	reference := uuid.NewString()

	ctx := h.Log.WithFields(c.Request.Context(), map[string]any{
		"reference":        reference,
		"board_type":       string(boardType),
		"has_phone":        req.Phone != "",
		"has_design_ideas": req.DesignIdeas != "",
	})
	h.Log.Info(ctx, "custom_order.received")

	c.JSON(http.StatusAccepted, dtos.CustomOrderResponse{Reference: reference, Status: "received"})
}
