package authz

import (
	"github.com/Shalinisinha22/Ewa-admin/internal/model"
)

// Principal is the acting admin for one request. It is re-derived from the
// bearer credential on every request and never cached server-side.
type Principal struct {
	ID          uint
	Name        string
	Email       string
	Role        string
	StoreID     *uint // nil only for super_admin
	Permissions []string
}

// NewPrincipal builds a Principal from a freshly loaded admin record
func NewPrincipal(admin *model.Admin) *Principal {
	return &Principal{
		ID:          admin.ID,
		Name:        admin.Name,
		Email:       admin.Email,
		Role:        admin.Role,
		StoreID:     admin.StoreID,
		Permissions: admin.Permissions,
	}
}

// IsSuperAdmin reports whether the principal is the store-agnostic super role
func (p *Principal) IsSuperAdmin() bool {
	return p.Role == model.RoleSuperAdmin
}
