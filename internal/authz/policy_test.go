package authz

import (
	"testing"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
)

func TestAuthorizeByRole(t *testing.T) {
	storeID := uint(1)

	tests := []struct {
		name        string
		role        string
		permissions []string
		resource    string
		wantErr     bool
	}{
		{"super admin reaches products", model.RoleSuperAdmin, nil, ResourceProducts, false},
		{"super admin reaches settings", model.RoleSuperAdmin, nil, ResourceSettings, false},
		{"store admin reaches orders", model.RoleStoreAdmin, nil, ResourceOrders, false},
		{"store admin reaches banners without permissions", model.RoleStoreAdmin, nil, ResourceBanners, false},
		{"manager with matching permission", model.RoleManager, []string{"products", "orders"}, ResourceProducts, false},
		{"manager without matching permission", model.RoleManager, []string{"products"}, ResourceCoupons, true},
		{"manager with empty permission set", model.RoleManager, nil, ResourceProducts, true},
		{"unknown role is denied", "auditor", []string{"products"}, ResourceProducts, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Principal{ID: 10, Role: tt.role, StoreID: &storeID, Permissions: tt.permissions}
			err := Authorize(p, tt.resource)
			if tt.wantErr && err == nil {
				t.Errorf("expected Authorize to fail for role %s on %s", tt.role, tt.resource)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected Authorize to pass for role %s on %s, got %v", tt.role, tt.resource, err)
			}
		})
	}
}

func TestAuthorizeIgnoresPermissionsOutsideKnownSet(t *testing.T) {
	storeID := uint(1)
	p := &Principal{ID: 3, Role: model.RoleManager, StoreID: &storeID, Permissions: []string{"everything"}}

	if err := Authorize(p, ResourceProducts); err == nil {
		t.Error("a permission naming an unknown resource must not grant access")
	}
}

func TestCanManageAdmins(t *testing.T) {
	storeID := uint(2)

	if !CanManageAdmins(&Principal{Role: model.RoleSuperAdmin}) {
		t.Error("super_admin should manage admins")
	}
	if !CanManageAdmins(&Principal{Role: model.RoleStoreAdmin, StoreID: &storeID}) {
		t.Error("store_admin should manage admins")
	}
	if CanManageAdmins(&Principal{Role: model.RoleManager, StoreID: &storeID, Permissions: []string{"settings"}}) {
		t.Error("manager should never manage admins, whatever its permission set")
	}
}

func TestCheckDelete(t *testing.T) {
	storeID := uint(2)

	superAdmin := &Principal{ID: 1, Role: model.RoleSuperAdmin}
	storeAdmin := &Principal{ID: 2, Role: model.RoleStoreAdmin, StoreID: &storeID}

	if err := CheckDelete(superAdmin, 99); err != nil {
		t.Errorf("super_admin deleting another admin should pass, got %v", err)
	}
	if err := CheckDelete(superAdmin, superAdmin.ID); err != ErrSelfDelete {
		t.Errorf("self-delete should return ErrSelfDelete, got %v", err)
	}
	if err := CheckDelete(storeAdmin, 99); err != ErrForbidden {
		t.Errorf("store_admin deleting admins should return ErrForbidden, got %v", err)
	}
	// The role gate runs first, so a store_admin self-delete reads as forbidden
	if err := CheckDelete(storeAdmin, storeAdmin.ID); err != ErrForbidden {
		t.Errorf("store_admin self-delete should return ErrForbidden, got %v", err)
	}
}

func TestCanAssignRole(t *testing.T) {
	storeID := uint(2)

	if !CanAssignRole(&Principal{Role: model.RoleSuperAdmin}) {
		t.Error("super_admin should assign roles")
	}
	if CanAssignRole(&Principal{Role: model.RoleStoreAdmin, StoreID: &storeID}) {
		t.Error("store_admin should not assign roles")
	}
	if CanAssignRole(&Principal{Role: model.RoleManager, StoreID: &storeID}) {
		t.Error("manager should not assign roles")
	}
}
