package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/models"
	"gorm.io/gorm"
)

type UpdateOrderStatusRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"tracking_number"`
}

type adminOrderView struct {
	ID         uint               `json:"id"`
	TotalPrice float64            `json:"total_price"`
	Status     models.OrderStatus `json:"status"`
	Tracking   string             `json:"tracking_number"`
	CreatedAt  time.Time          `json:"created_at"`
	User       models.PublicUser  `json:"user"`
}

// GET /orders/all?status=Pending
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{}).Preload("User").Order("id DESC")

		if statusParam := c.Query("status"); statusParam != "" {
			status, err := models.ParseOrderStatus(statusParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
				return
			}
			query = query.Where("status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]adminOrderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, adminOrderView{
				ID:         o.ID,
				TotalPrice: o.TotalPrice,
				Status:     o.Status,
				Tracking:   o.TrackingNumber,
				CreatedAt:  o.CreatedAt,
				User:       o.User.Public(),
			})
		}
		c.JSON(http.StatusOK, views)
	}
}

// PATCH /orders/:id/status
//
// Accepts a new status from the closed set and/or a tracking number. The
// line-item snapshot and total are never touched.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Status == "" && req.TrackingNumber == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status or tracking_number is required"})
			return
		}

		updates := make(map[string]interface{})
		if req.Status != "" {
			status, err := models.ParseOrderStatus(req.Status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
				return
			}
			updates["status"] = status
		}
		if req.TrackingNumber != nil {
			updates["tracking_number"] = *req.TrackingNumber
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, "id = ?", c.Param("id")).Error; err != nil {
				return err
			}
			return tx.Model(&order).Updates(updates).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
	}
}
