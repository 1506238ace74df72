package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/middleware"
	"github.com/rajsomesetty/primerice-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type cartItemView struct {
	ID       uint           `json:"id"`
	Quantity int            `json:"quantity"`
	Product  models.Product `json:"product"`
}

type cartView struct {
	CartID     *uint          `json:"cart_id"`
	Items      []cartItemView `json:"items"`
	TotalPrice float64        `json:"total_price"`
}

// POST /cart/add/:product_id
//
// Adding a product already in the cart bumps its quantity instead of
// creating a second row.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("product_id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		// Cart is created lazily on the first add. Two first-adds can race
		// the user_id unique index; the loser picks up the winner's row.
		cart := models.Cart{UserID: userID}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			return
		}
		if cart.ID == 0 {
			if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
				return
			}
		}

		var item models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		default:
			item.Quantity++
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
	}
}

// GET /cart
//
// The total is computed from current catalog prices, not stored ones.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cart models.Cart
		err := db.Preload("Items.Product").
			Where("user_id = ?", middleware.UserID(c)).
			First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, cartView{Items: []cartItemView{}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		view := cartView{CartID: &cart.ID, Items: make([]cartItemView, 0, len(cart.Items))}
		for _, item := range cart.Items {
			view.Items = append(view.Items, cartItemView{
				ID:       item.ID,
				Quantity: item.Quantity,
				Product:  item.Product,
			})
			view.TotalPrice += float64(item.Quantity) * item.Product.Price
		}
		c.JSON(http.StatusOK, view)
	}
}

func findOwnedItem(db *gorm.DB, itemID string, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := db.Select("cart_items.*").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// PATCH /cart/items/:item_id
func UpdateQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := findOwnedItem(db, c.Param("item_id"), middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/items/:item_id
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := findOwnedItem(db, c.Param("item_id"), middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		if err := db.Delete(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}
