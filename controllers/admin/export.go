package adminControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/orders/export
//
// Streams all orders as an xlsx workbook for offline reporting.
func ExportOrdersExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("User").Order("id").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
			return
		}

		header := sheet.AddRow()
		for _, title := range []string{"Order ID", "Customer", "Mobile", "Total", "Status", "Tracking", "Created At"} {
			header.AddCell().Value = title
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetInt(int(o.ID))
			row.AddCell().Value = o.User.Name
			row.AddCell().Value = o.User.Mobile
			row.AddCell().SetFloat(o.TotalPrice)
			row.AddCell().Value = string(o.Status)
			row.AddCell().Value = o.TrackingNumber
			row.AddCell().Value = o.CreatedAt.Format(time.RFC3339)
		}

		filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write export"})
			return
		}
	}
}
