package model

import (
	"time"
)

// Coupon discount types
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon represents a discount code. Code is unique within the owning store.
type Coupon struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Code           string    `json:"code" gorm:"type:varchar(40);not null;uniqueIndex:idx_coupons_store_code"`
	StoreID        uint      `json:"store_id" gorm:"index;not null;uniqueIndex:idx_coupons_store_code"`
	Type           string    `json:"type" gorm:"type:varchar(20);not null"`
	Value          float64   `json:"value" gorm:"not null"`
	MinOrderAmount float64   `json:"min_order_amount"`
	MaxDiscount    *float64  `json:"max_discount,omitempty"`
	UsageLimit     *int      `json:"usage_limit,omitempty"`
	UsedCount      int       `json:"used_count" gorm:"default:0"`
	ExpiryDate     time.Time `json:"expiry_date"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
