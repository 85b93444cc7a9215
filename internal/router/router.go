// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishvigems/gems-backend/internal/backend"
	"github.com/rishvigems/gems-backend/internal/config"
	"github.com/rishvigems/gems-backend/internal/handlers"
	"github.com/rishvigems/gems-backend/internal/middleware"
	"github.com/rishvigems/gems-backend/internal/services"
	"github.com/rishvigems/gems-backend/internal/utils"
)

func Initialize(gateway *backend.Gateway, cfg *config.Config) *gin.Engine {
	// Initialize services
	sessionService := services.NewSessionService(gateway, cfg)
	storageService := services.NewStorageService(gateway, cfg)
	catalogService := services.NewCatalogService(gateway, sessionService, storageService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessionService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, storageService)

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

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"mode":      gateway.Mode(),
			"connected": gateway.CheckConnection(c.Request.Context()),
			"version":   "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Catalog routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), catalogHandler.GetProducts)

			// Admin routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", catalogHandler.CreateProduct)
				protected.PUT("/:id", catalogHandler.UpdateProduct)
				protected.DELETE("/:id", catalogHandler.DeleteProduct)
				protected.POST("/upload-image", middleware.UploadRateLimit(), catalogHandler.UploadImage)
			}
		}

		v1.GET("/categories", catalogHandler.GetCategories)
	}

	return r
}
