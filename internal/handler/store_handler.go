package handler

import (
	"net/http"
	"strings"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StoreRequest defines the structure for store creation/update requests
type StoreRequest struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

// ListStores returns a paginated store listing. Routes are gated to
// super_admin, the only store-agnostic role.
func ListStores(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := parsePagination(c)

	query := database.GetDB().Model(&model.Store{})
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", pattern, pattern)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var stores []model.Store
	result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&stores)
	if result.Error != nil {
		log.Error("Failed to list stores", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve stores"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stores": stores,
		"page":   page,
		"pages":  totalPages(total, limit),
		"total":  total,
	})
}

// GetStore returns one store by id
func GetStore(c echo.Context) error {
	log := logger.FromContext(c)

	var store model.Store
	if result := database.GetDB().First(&store, c.Param("id")); result.Error != nil {
		log.Warn("Store not found", zap.String("store_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Store not found"})
	}

	return c.JSON(http.StatusOK, store)
}

// CreateStore creates a new store tenant
func CreateStore(c echo.Context) error {
	log := logger.FromContext(c)

	var req StoreRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse store creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}

	var count int64
	database.GetDB().Model(&model.Store{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Store with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{"message": "Store with this name already exists"})
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}

	status := req.Status
	if status == "" {
		status = model.StoreStatusActive
	}

	store := model.Store{
		Name:   req.Name,
		Slug:   slug,
		Status: status,
	}

	if result := database.GetDB().Create(&store); result.Error != nil {
		log.Error("Failed to create store", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Store creation failed"})
	}

	log.Info("Store created", zap.Uint("store_id", store.ID), zap.String("name", store.Name))
	prometheus.RecordResourceOperation("stores", "create")

	return c.JSON(http.StatusCreated, store)
}

// UpdateStore applies a partial update to a store
func UpdateStore(c echo.Context) error {
	log := logger.FromContext(c)

	var req StoreRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse store update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var store model.Store
	if result := database.GetDB().First(&store, c.Param("id")); result.Error != nil {
		log.Warn("Store not found for update", zap.String("store_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Store not found"})
	}

	if req.Name != "" && req.Name != store.Name {
		var count int64
		database.GetDB().Model(&model.Store{}).
			Where("name = ? AND id != ?", req.Name, store.ID).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Store with this name already exists"})
		}
		store.Name = req.Name
	}
	if req.Slug != "" {
		store.Slug = req.Slug
	}
	if req.Status != "" {
		store.Status = req.Status
	}

	if result := database.GetDB().Save(&store); result.Error != nil {
		log.Error("Failed to update store", zap.Uint("store_id", store.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Store update failed"})
	}

	log.Info("Store updated", zap.Uint("store_id", store.ID))
	prometheus.RecordResourceOperation("stores", "update")

	return c.JSON(http.StatusOK, store)
}

// DeleteStore removes a store tenant. Child entities are left in place; a
// store delete is an administrative action expected to follow data export.
func DeleteStore(c echo.Context) error {
	log := logger.FromContext(c)

	var store model.Store
	if result := database.GetDB().First(&store, c.Param("id")); result.Error != nil {
		log.Warn("Store not found for deletion", zap.String("store_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Store not found"})
	}

	if result := database.GetDB().Delete(&store); result.Error != nil {
		log.Error("Failed to delete store", zap.Uint("store_id", store.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Store deletion failed"})
	}

	log.Info("Store deleted", zap.Uint("store_id", store.ID))
	prometheus.RecordResourceOperation("stores", "delete")

	return c.JSON(http.StatusOK, echo.Map{"message": "Store deleted successfully"})
}
