package adminControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/models"
	"gorm.io/gorm"
)

type statusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// GET /admin/dashboard/stats
func DashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalOrders int64
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		var totalRevenue float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		now := time.Now().UTC()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		var todayRevenue float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_price), 0)").
			Where("created_at >= ?", midnight).
			Scan(&todayRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		var byStatus []statusCount
		if err := db.Model(&models.Order{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&byStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		statusCounts := make(map[models.OrderStatus]int64, len(byStatus))
		for _, sc := range byStatus {
			statusCounts[sc.Status] = sc.Count
		}

		c.JSON(http.StatusOK, gin.H{
			"total_orders":  totalOrders,
			"total_revenue": totalRevenue,
			"today_revenue": todayRevenue,
			"status_counts": statusCounts,
		})
	}
}
