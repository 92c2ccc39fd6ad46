// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/powersport/inventory-backend/internal/config"
	"github.com/powersport/inventory-backend/internal/handlers"
	"github.com/powersport/inventory-backend/internal/middleware"
	"github.com/powersport/inventory-backend/internal/services"
	"github.com/powersport/inventory-backend/internal/utils"
)

// Initialize wires the HTTP surface. The audit database is optional and may
// be nil when the key-value backend is not Postgres.
func Initialize(cfg *config.Config, storeService *services.StoreService, db *gorm.DB) *gin.Engine {
	// Initialize services
	authService := services.NewAuthService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, storeService)
	catalogHandler := handlers.NewCatalogHandler(storeService)
	cartHandler := handlers.NewCartHandler(storeService)
	adminHandler := handlers.NewAdminHandler(storeService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLog(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"store":   cfg.Store.Code,
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetSession)
		}

		// Catalog routes
		catalog := v1.Group("/catalog")
		catalog.Use(middleware.AuthRequired())
		{
			catalog.GET("", catalogHandler.GetCatalog)
			catalog.GET("/categories", catalogHandler.GetCategories)
		}

		// Product routes (stock adjustments are admin only)
		products := v1.Group("/products")
		products.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			products.PATCH("/:id/quantity", catalogHandler.AdjustQuantity)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.POST("/checkout", cartHandler.Checkout)
		}

		// Admin routes
		admin := v1.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/sync", middleware.SyncRateLimit(), adminHandler.SyncCatalog)
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
		}
	}

	return r
}
