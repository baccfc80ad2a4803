package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CouponRequest defines the structure for coupon creation/update requests
type CouponRequest struct {
	Code           *string    `json:"code"`
	Type           *string    `json:"type"`
	Value          *float64   `json:"value"`
	MinOrderAmount *float64   `json:"min_order_amount"`
	MaxDiscount    *float64   `json:"max_discount"`
	UsageLimit     *int       `json:"usage_limit"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	IsActive       *bool      `json:"is_active"`
}

// ListCoupons returns a paginated, store-scoped coupon listing
func ListCoupons(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	page, limit, offset := parsePagination(c)

	query := scoped(database.GetDB().Model(&model.Coupon{}), storeID)

	if search := c.QueryParam("search"); search != "" {
		query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if active := c.QueryParam("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	query.Count(&total)

	var coupons []model.Coupon
	result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&coupons)
	if result.Error != nil {
		log.Error("Failed to list coupons", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve coupons"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"coupons": coupons,
		"page":    page,
		"pages":   totalPages(total, limit),
		"total":   total,
	})
}

// GetCoupon returns one store-scoped coupon
func GetCoupon(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var coupon model.Coupon
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&coupon)
	if result.Error != nil {
		log.Warn("Coupon not found", zap.String("coupon_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Coupon not found"})
	}

	return c.JSON(http.StatusOK, coupon)
}

// CreateCoupon creates a coupon in the effective store. Codes are normalized
// to upper case and unique per store.
func CreateCoupon(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}
	if storeID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store context is required"})
	}

	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse coupon creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if req.Code == nil || *req.Code == "" || req.Type == nil || req.Value == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Code, type and value are required"})
	}
	if *req.Type != model.CouponTypePercentage && *req.Type != model.CouponTypeFixed {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid coupon type"})
	}

	code := strings.ToUpper(strings.TrimSpace(*req.Code))

	var count int64
	database.GetDB().Model(&model.Coupon{}).
		Where("code = ? AND store_id = ?", code, *storeID).
		Count(&count)
	if count > 0 {
		log.Warn("Coupon code already in use",
			zap.String("code", code),
			zap.Uint("store_id", *storeID))
		return c.JSON(http.StatusConflict, echo.Map{"message": "Coupon code already exists"})
	}

	coupon := model.Coupon{
		Code:     code,
		StoreID:  *storeID,
		Type:     *req.Type,
		Value:    *req.Value,
		IsActive: true,
	}
	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = *req.MinOrderAmount
	}
	coupon.MaxDiscount = req.MaxDiscount
	coupon.UsageLimit = req.UsageLimit
	if req.ExpiryDate != nil {
		coupon.ExpiryDate = *req.ExpiryDate
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if result := database.GetDB().Create(&coupon); result.Error != nil {
		log.Error("Failed to create coupon", zap.String("code", coupon.Code), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Coupon creation failed"})
	}

	log.Info("Coupon created",
		zap.Uint("coupon_id", coupon.ID),
		zap.String("code", coupon.Code),
		zap.Uint("store_id", coupon.StoreID))
	prometheus.RecordResourceOperation("coupons", "create")

	return c.JSON(http.StatusCreated, coupon)
}

// UpdateCoupon merges the provided fields into a store-scoped coupon
func UpdateCoupon(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse coupon update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var coupon model.Coupon
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&coupon)
	if result.Error != nil {
		log.Warn("Coupon not found for update", zap.String("coupon_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Coupon not found"})
	}

	if req.Code != nil && *req.Code != "" {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code != coupon.Code {
			var count int64
			database.GetDB().Model(&model.Coupon{}).
				Where("code = ? AND store_id = ? AND id <> ?", code, coupon.StoreID, coupon.ID).
				Count(&count)
			if count > 0 {
				return c.JSON(http.StatusConflict, echo.Map{"message": "Coupon code already exists"})
			}
			coupon.Code = code
		}
	}
	if req.Type != nil {
		if *req.Type != model.CouponTypePercentage && *req.Type != model.CouponTypeFixed {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid coupon type"})
		}
		coupon.Type = *req.Type
	}
	if req.Value != nil {
		coupon.Value = *req.Value
	}
	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = *req.MinOrderAmount
	}
	if req.MaxDiscount != nil {
		coupon.MaxDiscount = req.MaxDiscount
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = req.UsageLimit
	}
	if req.ExpiryDate != nil {
		coupon.ExpiryDate = *req.ExpiryDate
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if result := database.GetDB().Save(&coupon); result.Error != nil {
		log.Error("Failed to update coupon", zap.Uint("coupon_id", coupon.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Coupon update failed"})
	}

	log.Info("Coupon updated", zap.Uint("coupon_id", coupon.ID), zap.String("code", coupon.Code))
	prometheus.RecordResourceOperation("coupons", "update")

	return c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon removes a store-scoped coupon
func DeleteCoupon(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var coupon model.Coupon
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&coupon)
	if result.Error != nil {
		log.Warn("Coupon not found for deletion", zap.String("coupon_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Coupon not found"})
	}

	if result := database.GetDB().Delete(&coupon); result.Error != nil {
		log.Error("Failed to delete coupon", zap.Uint("coupon_id", coupon.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Coupon deletion failed"})
	}

	log.Info("Coupon deleted", zap.Uint("coupon_id", coupon.ID), zap.String("code", coupon.Code))
	prometheus.RecordResourceOperation("coupons", "delete")

	return c.JSON(http.StatusOK, echo.Map{"message": "Coupon deleted successfully"})
}
