package model

import (
	"time"
)

// Product statuses. out_of_stock is entered automatically when stock hits
// zero; draft and inactive are only ever set by an administrator.
const (
	ProductStatusDraft      = "draft"
	ProductStatusActive     = "active"
	ProductStatusOutOfStock = "out_of_stock"
	ProductStatusInactive   = "inactive"
)

// Product represents a store's sellable item
type Product struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	Description       string    `json:"description" gorm:"type:text"`
	Brand             string    `json:"brand" gorm:"type:varchar(100)"`
	SKU               string    `json:"sku" gorm:"type:varchar(100)"`
	Price             float64   `json:"price" gorm:"not null"`
	DiscountPrice     *float64  `json:"discount_price,omitempty"`
	Stock             int       `json:"stock" gorm:"default:0"`
	LowStockThreshold int       `json:"low_stock_threshold" gorm:"default:5"`
	CategoryID        *uint     `json:"category_id,omitempty" gorm:"index"`
	StoreID           uint      `json:"store_id" gorm:"index;not null"`
	Images            []string  `json:"images" gorm:"serializer:json"`
	Featured          bool      `json:"featured" gorm:"default:false"`
	Status            string    `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
