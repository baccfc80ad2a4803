package model

import (
	"time"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is one line of an order, denormalized at checkout time
type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
}

// ShippingAddress is the delivery destination captured with the order
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order represents a customer order within a store
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"type:varchar(40);uniqueIndex;not null"`
	StoreID         uint            `json:"store_id" gorm:"index;not null"`
	CustomerName    string          `json:"customer_name" gorm:"type:varchar(100)"`
	CustomerEmail   string          `json:"customer_email" gorm:"type:varchar(100);index"`
	Items           []OrderItem     `json:"items" gorm:"serializer:json"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"serializer:json"`
	PaymentMethod   string          `json:"payment_method" gorm:"type:varchar(50)"`
	TaxPrice        float64         `json:"tax_price"`
	ShippingPrice   float64         `json:"shipping_price"`
	TotalPrice      float64         `json:"total_price"`
	IsPaid          bool            `json:"is_paid" gorm:"default:false"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `json:"is_delivered" gorm:"default:false"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Status          string          `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
