package model

import (
	"time"
)

// Admin roles
const (
	RoleSuperAdmin = "super_admin"
	RoleStoreAdmin = "store_admin"
	RoleManager    = "manager"
)

// Admin statuses
const (
	AdminStatusActive    = "active"
	AdminStatusInactive  = "inactive"
	AdminStatusSuspended = "suspended"
)

// DefaultManagerPermissions is the resource subset granted to newly created
// managers when no explicit permission set is provided.
var DefaultManagerPermissions = []string{"products", "categories", "orders"}

// Admin represents a dashboard user. StoreID is nil only for super_admin,
// which is not bound to any single store.
type Admin struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(100);not null"`
	Email       string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"type:varchar(255);not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	Role        string     `json:"role" gorm:"type:varchar(20);not null;default:'manager'"`
	StoreID     *uint      `json:"store_id,omitempty" gorm:"index"`
	StoreName   string     `json:"store_name,omitempty" gorm:"type:varchar(100)"`
	Permissions []string   `json:"permissions" gorm:"serializer:json"`
	Avatar      string     `json:"avatar,omitempty" gorm:"type:varchar(255)"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
