package handlers

import (
	"errors"
	"net/http"
	"strings"

	"eastside-storefront/dtos"
	"eastside-storefront/firebase"
	"eastside-storefront/logger"
	"eastside-storefront/middleware"
	"eastside-storefront/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	StoreID   string
	Bucket    string
	Functions firebase.ProductGateway
	Storage   firebase.StorageClient
	Log       *logger.Logger
}

func (h *AdminHandler) Me(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	c.JSON(http.StatusOK, gin.H{
		"uid":     identity.UID,
		"email":   identity.Email,
		"role":    identity.Role,
		"storeId": identity.StoreID,
		"isAdmin": identity.IsAdminFor(h.StoreID),
	})
}

// Bootstrap asks the backend to grant the caller admin claims for this store.
// The caller must refresh its ID token to pick up the new claims.
func (h *AdminHandler) Bootstrap(c *gin.Context) {
	if h.Functions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin functions are not configured"})
		return
	}
	if err := h.Functions.BootstrapAdminClaims(c.Request.Context(), middleware.IDToken(c), h.StoreID); err != nil {
		h.functionError(c, "admin.bootstrap_failed", err, "Unable to grant admin access.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin claims granted. Refresh your session to continue."})
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	if h.Functions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin functions are not configured"})
		return
	}
	var req dtos.ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	product := req.ToProduct()
	if err := h.Functions.AddProduct(c.Request.Context(), middleware.IDToken(c), h.StoreID, product); err != nil {
		h.functionError(c, "admin.add_product_failed", err, "Unable to save product. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	if h.Functions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin functions are not configured"})
		return
	}
	var req dtos.ProductPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	productID := c.Param("id")
	product := req.ToProduct()
	if err := h.Functions.UpdateProduct(c.Request.Context(), middleware.IDToken(c), h.StoreID, productID, product); err != nil {
		h.functionError(c, "admin.update_product_failed", err, "Unable to save product. Please try again.")
		return
	}
	product.ID = productID
	c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if h.Functions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin functions are not configured"})
		return
	}
	if err := h.Functions.DeleteProduct(c.Request.Context(), middleware.IDToken(c), h.StoreID, c.Param("id")); err != nil {
		h.functionError(c, "admin.delete_product_failed", err, "Unable to delete product.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *AdminHandler) UploadImage(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	identity, _ := middleware.GetIdentity(c)
	url, err := h.Storage.UploadProductImage(
		c.Request.Context(),
		h.StoreID,
		identity.UID,
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		h.Log.Error(c.Request.Context(), "admin.image_upload_failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
		return
	}
	c.JSON(http.StatusCreated, dtos.ImageResponse{URL: url})
}

func (h *AdminHandler) ImportImage(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}
	var req dtos.ImageImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	identity, _ := middleware.GetIdentity(c)
	url, err := h.Storage.ImportRemoteImage(c.Request.Context(), h.StoreID, identity.UID, req.URL)
	if err != nil {
		h.Log.Error(h.Log.WithField(c.Request.Context(), "source_url", req.URL), "admin.image_import_failed", err)
		if errors.Is(err, firebase.ErrImageTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds 5MB"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image import failed"})
		return
	}
	c.JSON(http.StatusCreated, dtos.ImageResponse{URL: url})
}

func (h *AdminHandler) DeleteImage(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}
	var req dtos.ImageDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	objectPath, err := utils.ExtractObjectPath(req.URL, h.Bucket)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is not an uploaded image"})
		return
	}
	if !strings.HasPrefix(objectPath, "stores/"+h.StoreID+"/") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Image belongs to another store"})
		return
	}

	if err := h.Storage.DeleteFile(c.Request.Context(), objectPath); err != nil {
		h.Log.Error(c.Request.Context(), "admin.image_delete_failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

func (h *AdminHandler) functionError(c *gin.Context, event string, err error, fallback string) {
	h.Log.Error(c.Request.Context(), event, err)

	var fnErr *firebase.FunctionError
	if !errors.As(err, &fnErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
		return
	}
	switch fnErr.Status {
	case "INVALID_ARGUMENT", "FAILED_PRECONDITION":
		c.JSON(http.StatusBadRequest, gin.H{"error": fnErr.Message})
	case "UNAUTHENTICATED":
		c.JSON(http.StatusUnauthorized, gin.H{"error": fnErr.Message})
	case "PERMISSION_DENIED":
		c.JSON(http.StatusForbidden, gin.H{"error": fnErr.Message})
	case "NOT_FOUND":
		c.JSON(http.StatusNotFound, gin.H{"error": fnErr.Message})
	case "ALREADY_EXISTS":
		c.JSON(http.StatusConflict, gin.H{"error": fnErr.Message})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	}
}
