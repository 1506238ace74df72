package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/config"
	adminControllers "github.com/rajsomesetty/primerice-backend/controllers/admin"
	categoryControllers "github.com/rajsomesetty/primerice-backend/controllers/category"
	productControllers "github.com/rajsomesetty/primerice-backend/controllers/product"
	"github.com/rajsomesetty/primerice-backend/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the /admin/* console endpoints, all gated by the
// admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(db, cfg.JWT.Secret), middleware.AdminOnly())
	{
		productGroup := adminGroup.Group("/products")
		{
			productGroup.GET("", productControllers.GetProducts(db))
			productGroup.POST("", productControllers.CreateProduct(db))
			productGroup.PUT("/:id", productControllers.UpdateProduct(db))
			productGroup.DELETE("/:id", productControllers.DeleteProduct(db))
		}

		categoryGroup := adminGroup.Group("/categories")
		{
			categoryGroup.GET("", categoryControllers.GetAllCategories(db))
			categoryGroup.POST("", categoryControllers.CreateCategory(db))
			categoryGroup.DELETE("/:id", categoryControllers.DeleteCategory(db))
		}

		userGroup := adminGroup.Group("/users")
		{
			userGroup.GET("", adminControllers.GetAllUsers(db))
			userGroup.POST("/:id/make-admin", adminControllers.MakeAdmin(db))
			userGroup.POST("/:id/remove-admin", adminControllers.RemoveAdmin(db))
			userGroup.DELETE("/:id", adminControllers.DeleteUser(db))
		}

		adminGroup.GET("/dashboard/stats", adminControllers.DashboardStats(db))
		adminGroup.GET("/orders/export", adminControllers.ExportOrdersExcel(db))
		adminGroup.POST("/upload", adminControllers.UploadImage(cfg.Uploads.Dir, cfg.Uploads.PublicPath))
	}
}
