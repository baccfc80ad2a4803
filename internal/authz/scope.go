package authz

import (
	"strconv"
)

// EffectiveStoreID computes the store every downstream query must be scoped
// by. override is the raw storeId query parameter, empty when absent.
//
//   - super_admin with an override: scoped to that store.
//   - super_admin without one: unscoped (nil), valid only for store-agnostic
//     operations such as store management.
//   - any other role: always its own store. An override that names a
//     different store is Forbidden, never silently honored.
func EffectiveStoreID(p *Principal, override string) (*uint, error) {
	if p.IsSuperAdmin() {
		if override == "" {
			return nil, nil
		}
		id, err := strconv.ParseUint(override, 10, 32)
		if err != nil {
			return nil, ErrForbidden
		}
		storeID := uint(id)
		return &storeID, nil
	}

	if p.StoreID == nil {
		// A store-bound role without a store binding is a broken account
		return nil, ErrForbidden
	}

	if override != "" {
		id, err := strconv.ParseUint(override, 10, 32)
		if err != nil || uint(id) != *p.StoreID {
			return nil, ErrForbidden
		}
	}

	return p.StoreID, nil
}
