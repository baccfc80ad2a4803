package authz

import (
	"testing"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
)

func TestEffectiveStoreIDSuperAdmin(t *testing.T) {
	p := &Principal{ID: 1, Role: model.RoleSuperAdmin}

	storeID, err := EffectiveStoreID(p, "")
	if err != nil {
		t.Fatalf("super_admin without override should be unscoped, got %v", err)
	}
	if storeID != nil {
		t.Errorf("expected nil scope, got %d", *storeID)
	}

	storeID, err = EffectiveStoreID(p, "7")
	if err != nil {
		t.Fatalf("super_admin with override should be scoped, got %v", err)
	}
	if storeID == nil || *storeID != 7 {
		t.Errorf("expected scope 7, got %v", storeID)
	}

	if _, err := EffectiveStoreID(p, "not-a-number"); err != ErrForbidden {
		t.Errorf("unparseable override should be forbidden, got %v", err)
	}
}

func TestEffectiveStoreIDStoreBoundRoles(t *testing.T) {
	ownStore := uint(3)

	for _, role := range []string{model.RoleStoreAdmin, model.RoleManager} {
		p := &Principal{ID: 2, Role: role, StoreID: &ownStore}

		storeID, err := EffectiveStoreID(p, "")
		if err != nil {
			t.Fatalf("%s without override should scope to its own store, got %v", role, err)
		}
		if storeID == nil || *storeID != ownStore {
			t.Errorf("%s: expected scope %d, got %v", role, ownStore, storeID)
		}

		// An override that agrees with the binding is harmless
		storeID, err = EffectiveStoreID(p, "3")
		if err != nil {
			t.Fatalf("%s with matching override should pass, got %v", role, err)
		}
		if storeID == nil || *storeID != ownStore {
			t.Errorf("%s: expected scope %d, got %v", role, ownStore, storeID)
		}

		// One that disagrees is never honored
		if _, err := EffectiveStoreID(p, "4"); err != ErrForbidden {
			t.Errorf("%s with foreign override should be forbidden, got %v", role, err)
		}
		if _, err := EffectiveStoreID(p, "junk"); err != ErrForbidden {
			t.Errorf("%s with unparseable override should be forbidden, got %v", role, err)
		}
	}
}

func TestEffectiveStoreIDBrokenBinding(t *testing.T) {
	p := &Principal{ID: 2, Role: model.RoleStoreAdmin, StoreID: nil}

	if _, err := EffectiveStoreID(p, ""); err != ErrForbidden {
		t.Errorf("store-bound role without a store should be forbidden, got %v", err)
	}
}
