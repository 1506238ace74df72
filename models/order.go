package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps a client-supplied string onto the closed status set.
// Matching is case-insensitive; anything outside the set is rejected.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return OrderStatusPending, nil
	case "processing":
		return OrderStatusProcessing, nil
	case "shipped":
		return OrderStatusShipped, nil
	case "delivered":
		return OrderStatusDelivered, nil
	case "cancelled":
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"index;not null" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"-"`
	ItemsJSON      string      `gorm:"type:text" json:"-"`
	TotalPrice     float64     `json:"total_price"`
	AddressID      uint        `json:"address_id"`
	Status         OrderStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	TrackingNumber string      `json:"tracking_number"`
	CreatedAt      time.Time   `json:"created_at"`
}

// OrderLineItem is the frozen per-product snapshot stored in ItemsJSON.
// Later catalog price changes do not affect it.
type OrderLineItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
