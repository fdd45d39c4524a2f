package routes

import (
	"net/http"

	"eastside-storefront/cart"
	"eastside-storefront/catalog"
	"eastside-storefront/firebase"
	"eastside-storefront/handlers"
	"eastside-storefront/logger"
	"eastside-storefront/middleware"

	"github.com/gin-gonic/gin"
)

// Dependencies is everything the route table needs. Verifier, Functions and Storage
// are optional; admin routes are only mounted when a Verifier is present.
type Dependencies struct {
	StoreID  string
	Bucket   string
	Log      *logger.Logger
	Catalog  catalog.Source
	Registry *cart.Registry
	Session  middleware.SessionConfig

	Verifier  firebase.TokenVerifier
	Functions firebase.ProductGateway
	Storage   firebase.StorageClient

	CustomOrderLimiter *middleware.RateLimiter
	Metrics            http.Handler
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	productHandler := &handlers.ProductHandler{Catalog: deps.Catalog}
	cartHandler := &handlers.CartHandler{Catalog: deps.Catalog}
	customOrderHandler := &handlers.CustomOrderHandler{Log: deps.Log}

	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:slug", productHandler.GetProduct)

		customOrders := api.Group("/custom-orders")
		if deps.CustomOrderLimiter != nil {
			customOrders.Use(deps.CustomOrderLimiter.Middleware())
		}
		customOrders.POST("", customOrderHandler.Submit)
	}

	cartRoutes := api.Group("/cart")
	cartRoutes.Use(middleware.CartSession(deps.Registry, deps.Session, deps.Log))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.POST("/items", cartHandler.AddItem)
		cartRoutes.PUT("/items/:key/quantity", cartHandler.UpdateQuantity)
		cartRoutes.PUT("/items/:key/variant", cartHandler.UpdateVariant)
		cartRoutes.DELETE("/items/:key", cartHandler.RemoveItem)
	}

	if deps.Verifier != nil {
		adminHandler := &handlers.AdminHandler{
			StoreID:   deps.StoreID,
			Bucket:    deps.Bucket,
			Functions: deps.Functions,
			Storage:   deps.Storage,
			Log:       deps.Log,
		}

		authed := api.Group("/admin")
		authed.Use(middleware.AuthMiddleware(deps.Verifier))
		{
			authed.GET("/me", adminHandler.Me)
			authed.POST("/bootstrap", adminHandler.Bootstrap)
		}

		admin := authed.Group("")
		admin.Use(middleware.AdminMiddleware(deps.StoreID))
		{
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/images", adminHandler.UploadImage)
			admin.POST("/images/import", adminHandler.ImportImage)
			admin.DELETE("/images", adminHandler.DeleteImage)
		}
	}

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"status": "ok", "catalogReady": deps.Catalog.Ready()}
		if err := deps.Catalog.Err(); err != nil {
			body["status"] = "degraded"
			body["catalogError"] = err.Error()
		}
		c.JSON(status, body)
	})
}
