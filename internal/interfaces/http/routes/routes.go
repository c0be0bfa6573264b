// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/pkg/recommend"
	"gorm.io/gorm"
)

// SetupRoutes wires up all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, cfg, recommend.NewClient(cfg, logger))

	// Catalog (read-only)
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Session-scoped cart, action-dispatch endpoint
	rg.POST("/cart", cartHandler.HandleOperation)

	// Checkout
	rg.POST("/checkout", checkoutHandler.Checkout)
}
