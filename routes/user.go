package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/config"
	addressControllers "github.com/rajsomesetty/primerice-backend/controllers/address"
	cartControllers "github.com/rajsomesetty/primerice-backend/controllers/cart"
	categoryControllers "github.com/rajsomesetty/primerice-backend/controllers/category"
	productControllers "github.com/rajsomesetty/primerice-backend/controllers/product"
	"github.com/rajsomesetty/primerice-backend/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the public catalog reads and the JWT-protected
// address book and cart endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Catalog browsing needs no token.
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", categoryControllers.GetAllCategories(db))

	authd := middleware.ValidateToken(db, cfg.JWT.Secret)

	addressGroup := r.Group("/addresses")
	addressGroup.Use(authd)
	{
		addressGroup.GET("", addressControllers.ListAddresses(db))
		addressGroup.POST("", addressControllers.CreateAddress(db))
		addressGroup.DELETE("/:id", addressControllers.DeleteAddress(db))
	}

	cartGroup := r.Group("/cart")
	cartGroup.Use(authd)
	{
		cartGroup.GET("", cartControllers.GetCart(db))
		cartGroup.POST("/add/:product_id", cartControllers.AddToCart(db))
		cartGroup.PATCH("/items/:item_id", cartControllers.UpdateQuantity(db))
		cartGroup.DELETE("/items/:item_id", cartControllers.RemoveItem(db))
	}
}
