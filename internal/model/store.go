package model

import (
	"time"
)

// Store statuses
const (
	StoreStatusActive   = "active"
	StoreStatusInactive = "inactive"
)

// Store is the root tenant boundary. Every other business entity carries a
// StoreID foreign key and is only ever read or written through it.
type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
