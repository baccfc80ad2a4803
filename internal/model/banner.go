package model

import (
	"time"
)

// BannerPositions is the closed set of placements the storefront renders
var BannerPositions = []string{
	"hero", "sidebar", "popup", "about", "contact", "terms", "privacy", "refund", "shipping",
}

// Banner represents a promotional or content banner within a store
type Banner struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"type:varchar(150);not null"`
	Image     string     `json:"image" gorm:"type:varchar(255);not null"`
	Link      string     `json:"link,omitempty" gorm:"type:varchar(255)"`
	Position  string     `json:"position" gorm:"type:varchar(20);not null"`
	StoreID   uint       `json:"store_id" gorm:"index;not null"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ValidBannerPosition reports whether pos is one of the allowed placements
func ValidBannerPosition(pos string) bool {
	for _, p := range BannerPositions {
		if p == pos {
			return true
		}
	}
	return false
}
