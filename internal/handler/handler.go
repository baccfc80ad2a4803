package handler

import (
	"strconv"

	"github.com/Shalinisinha22/Ewa-admin/internal/authz"
	"github.com/Shalinisinha22/Ewa-admin/internal/middleware"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// parsePagination reads page/limit query parameters with the platform
// defaults. page is floored at 1 and limit must be positive.
func parsePagination(c echo.Context) (page, limit, offset int) {
	page = defaultPage
	limit = defaultLimit

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}

	return page, limit, (page - 1) * limit
}

// totalPages computes the page count for a result set
func totalPages(total int64, limit int) int64 {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}

// resolveScope returns the acting principal and the effective store scope
// for the request, honoring the storeId query override for super_admin only.
// A nil scope means unscoped (super_admin acting store-agnostically).
func resolveScope(c echo.Context) (*authz.Principal, *uint, error) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return nil, nil, authz.ErrForbidden
	}

	storeID, err := authz.EffectiveStoreID(principal, c.QueryParam("storeId"))
	if err != nil {
		return nil, nil, err
	}

	return principal, storeID, nil
}

// scoped applies the effective store filter to a query. A nil storeID leaves
// the query unscoped.
func scoped(query *gorm.DB, storeID *uint) *gorm.DB {
	if storeID != nil {
		return query.Where("store_id = ?", *storeID)
	}
	return query
}
