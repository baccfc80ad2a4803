package authz

import (
	"errors"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
)

// Resource kinds the access policy knows about. The set is closed: a
// permission naming anything else never grants access.
const (
	ResourceProducts   = "products"
	ResourceCategories = "categories"
	ResourceOrders     = "orders"
	ResourceCoupons    = "coupons"
	ResourceBanners    = "banners"
	ResourceCustomers  = "customers"
	ResourcePages      = "pages"
	ResourceReports    = "reports"
	ResourceSettings   = "settings"
)

// RoleChangeSilentIgnore controls how a role change submitted by a
// non-super_admin is handled. true keeps the original platform behavior:
// the role field is dropped from the update without an error. Set to false
// to reject such updates with Forbidden instead.
const RoleChangeSilentIgnore = true

var (
	// ErrForbidden means the role lacks permission for the resource kind,
	// or a tenant override was attempted by a store-bound principal.
	ErrForbidden = errors.New("forbidden")

	// ErrSelfDelete means a principal tried to delete its own account
	ErrSelfDelete = errors.New("cannot delete your own account")
)

// Authorize decides whether the principal's role may operate on the given
// resource kind. super_admin and store_admin reach every resource; manager
// only the kinds in its permission set.
func Authorize(p *Principal, resource string) error {
	switch p.Role {
	case model.RoleSuperAdmin, model.RoleStoreAdmin:
		return nil
	case model.RoleManager:
		for _, perm := range p.Permissions {
			if perm == resource {
				return nil
			}
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}

// CanManageAdmins reports whether the role may list, create or update admin
// accounts. Managers never can, regardless of their permission set.
func CanManageAdmins(p *Principal) bool {
	return p.Role == model.RoleSuperAdmin || p.Role == model.RoleStoreAdmin
}

// CanDeleteAdmins reports whether the role may delete admin accounts
func CanDeleteAdmins(p *Principal) bool {
	return p.Role == model.RoleSuperAdmin
}

// CheckDelete guards admin deletion. The self-delete check is by identity,
// independent of role: even super_admin cannot remove its own account.
func CheckDelete(p *Principal, targetID uint) error {
	if !CanDeleteAdmins(p) {
		return ErrForbidden
	}
	if p.ID == targetID {
		return ErrSelfDelete
	}
	return nil
}

// CanAssignRole reports whether the principal may set another admin's role
// field. Only super_admin assigns roles; see RoleChangeSilentIgnore for how
// disallowed attempts are treated.
func CanAssignRole(p *Principal) bool {
	return p.Role == model.RoleSuperAdmin
}
