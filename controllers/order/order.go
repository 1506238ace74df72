package orderControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/middleware"
	"github.com/rajsomesetty/primerice-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrAddressNotFound    = errors.New("address not found")
	ErrProductUnavailable = errors.New("product no longer available")
)

type CreateOrderRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

// PlaceOrder converts the user's cart into an immutable order.
//
// The whole sequence runs in one transaction: the cart row is locked, line
// items are snapshotted at current catalog prices, the order row is created
// and the cart is cleared. Either everything commits or nothing does, so a
// concurrent placement on the same cart serializes behind the lock and finds
// it empty.
func PlaceOrder(db *gorm.DB, userID, addressID uint) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		cartQuery := tx.Where("user_id = ?", userID)
		// SQLite has no row locks; the in-memory test database runs
		// single-writer anyway.
		if tx.Dialector.Name() == "postgres" {
			cartQuery = cartQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var cart models.Cart
		if err := cartQuery.First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartEmpty
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAddressNotFound
			}
			return err
		}

		var total float64
		lineItems := make([]models.OrderLineItem, 0, len(items))
		for _, item := range items {
			if item.Product.ID == 0 {
				return ErrProductUnavailable
			}
			lineItems = append(lineItems, models.OrderLineItem{
				ProductID: item.ProductID,
				Name:      item.Product.Name,
				Price:     item.Product.Price,
				Quantity:  item.Quantity,
			})
			total += float64(item.Quantity) * item.Product.Price
		}

		itemsJSON, err := json.Marshal(lineItems)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:     userID,
			ItemsJSON:  string(itemsJSON),
			TotalPrice: total,
			AddressID:  address.ID,
			Status:     models.OrderStatusPending,
			CreatedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&cart).Update("total_price", 0).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /orders/create
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, middleware.UserID(c), req.AddressID)
		switch {
		case errors.Is(err, ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, ErrAddressNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		case errors.Is(err, ErrProductUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A product in the cart is no longer available"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		default:
			c.JSON(http.StatusCreated, gin.H{
				"order_id":    order.ID,
				"total_price": order.TotalPrice,
				"status":      order.Status,
			})
		}
	}
}

type orderSummary struct {
	ID         uint               `json:"id"`
	TotalPrice float64            `json:"total_price"`
	Status     models.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

// GET /orders/my
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Where("user_id = ?", middleware.UserID(c)).
			Order("id DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		summaries := make([]orderSummary, 0, len(orders))
		for _, o := range orders {
			summaries = append(summaries, orderSummary{
				ID:         o.ID,
				TotalPrice: o.TotalPrice,
				Status:     o.Status,
				CreatedAt:  o.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, summaries)
	}
}

// GET /orders/:id
//
// Users see their own orders only. Admins can fetch any order and the
// response additionally carries the customer detail.
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("id = ?", c.Param("id"))
		if !middleware.IsAdmin(c) {
			query = query.Where("user_id = ?", middleware.UserID(c))
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		var items []models.OrderLineItem
		if err := json.Unmarshal([]byte(order.ItemsJSON), &items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode order items"})
			return
		}

		// The address row can be gone when the account was deleted; the
		// order itself is self-contained, so render a null address.
		address := &models.Address{}
		if err := db.First(address, "id = ?", order.AddressID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
				return
			}
			address = nil
		}

		resp := gin.H{
			"id":              order.ID,
			"total_price":     order.TotalPrice,
			"status":          order.Status,
			"tracking_number": order.TrackingNumber,
			"items":           items,
			"address":         address,
			"created_at":      order.CreatedAt,
		}
		if middleware.IsAdmin(c) {
			var user models.User
			if err := db.First(&user, "id = ?", order.UserID).Error; err == nil {
				resp["user"] = user.Public()
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
