package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/config"
	orderControllers "github.com/rajsomesetty/primerice-backend/controllers/order"
	"github.com/rajsomesetty/primerice-backend/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers the /orders/* endpoints. Listing every order and
// mutating status are admin-only; the rest is scoped to the caller.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.ValidateToken(db, cfg.JWT.Secret))
	{
		orderGroup.POST("/create", orderControllers.CreateOrder(db))
		orderGroup.GET("/my", orderControllers.GetMyOrders(db))
		orderGroup.GET("/all", middleware.AdminOnly(), orderControllers.GetAllOrders(db))
		orderGroup.GET("/:id", orderControllers.GetOrderByID(db))
		orderGroup.PATCH("/:id/status", middleware.AdminOnly(), orderControllers.UpdateOrderStatus(db))
	}
}
