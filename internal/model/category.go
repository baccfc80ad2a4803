package model

import (
	"time"
)

// Category represents a product category owned by a single store. Name is
// unique within the owning store, not globally.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_store_name"`
	Description string    `json:"description" gorm:"type:text"`
	Slug        string    `json:"slug" gorm:"type:varchar(120);not null"`
	ParentID    *uint     `json:"parent_id,omitempty" gorm:"index"`
	Image       string    `json:"image,omitempty" gorm:"type:varchar(255)"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	StoreID     uint      `json:"store_id" gorm:"index;not null;uniqueIndex:idx_categories_store_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
