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

// categoryDeletePolicy controls what happens when a category that still has
// products is deleted: "block" refuses, "cascade" deletes the products too.
var categoryDeletePolicy = "block"

// SetCategoryDeletePolicy wires the configured delete policy at startup
func SetCategoryDeletePolicy(policy string) {
	categoryDeletePolicy = policy
}

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
	ParentID    *uint   `json:"parent_id"`
	Image       *string `json:"image"`
	SortOrder   *int    `json:"sort_order"`
}

// ListCategories returns the store's categories ordered by sort order
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	query := scoped(database.GetDB().Model(&model.Category{}), storeID)

	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	var categories []model.Category
	result := query.Order("sort_order ASC, name ASC").Find(&categories)
	if result.Error != nil {
		log.Error("Failed to list categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, categories)
}

// GetCategory returns one store-scoped category
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var category model.Category
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&category)
	if result.Error != nil {
		log.Warn("Category not found", zap.String("category_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category in the effective store. Names are unique
// per store, and a parent category must live in the same store.
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}
	if storeID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store context is required"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse category creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if req.Name == nil || *req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name is required"})
	}

	var count int64
	database.GetDB().Model(&model.Category{}).
		Where("name = ? AND store_id = ?", *req.Name, *storeID).
		Count(&count)
	if count > 0 {
		log.Warn("Category name already in use",
			zap.String("name", *req.Name),
			zap.Uint("store_id", *storeID))
		return c.JSON(http.StatusConflict, echo.Map{"message": "Category already exists"})
	}

	if req.ParentID != nil {
		var parents int64
		database.GetDB().Model(&model.Category{}).
			Where("id = ? AND store_id = ?", *req.ParentID, *storeID).
			Count(&parents)
		if parents == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Parent category not found"})
		}
	}

	category := model.Category{
		Name:     *req.Name,
		StoreID:  *storeID,
		ParentID: req.ParentID,
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Slug != nil && *req.Slug != "" {
		category.Slug = *req.Slug
	} else {
		category.Slug = slugify(*req.Name)
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if result := database.GetDB().Create(&category); result.Error != nil {
		log.Error("Failed to create category", zap.String("name", category.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Category creation failed"})
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name),
		zap.Uint("store_id", category.StoreID))
	prometheus.RecordResourceOperation("categories", "create")

	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory merges the provided fields into a store-scoped category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse category update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var category model.Category
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&category)
	if result.Error != nil {
		log.Warn("Category not found for update", zap.String("category_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
	}

	if req.Name != nil && *req.Name != category.Name {
		var count int64
		database.GetDB().Model(&model.Category{}).
			Where("name = ? AND store_id = ? AND id <> ?", *req.Name, category.StoreID, category.ID).
			Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Category already exists"})
		}
		category.Name = *req.Name
	}

	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Category cannot be its own parent"})
		}
		var parents int64
		database.GetDB().Model(&model.Category{}).
			Where("id = ? AND store_id = ?", *req.ParentID, category.StoreID).
			Count(&parents)
		if parents == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Parent category not found"})
		}
		category.ParentID = req.ParentID
	}

	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Slug != nil && *req.Slug != "" {
		category.Slug = *req.Slug
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if result := database.GetDB().Save(&category); result.Error != nil {
		log.Error("Failed to update category", zap.Uint("category_id", category.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Category update failed"})
	}

	log.Info("Category updated", zap.Uint("category_id", category.ID))
	prometheus.RecordResourceOperation("categories", "update")

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a store-scoped category, honoring the configured
// delete policy when products still reference it
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var category model.Category
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&category)
	if result.Error != nil {
		log.Warn("Category not found for deletion", zap.String("category_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Category not found"})
	}

	var productCount int64
	database.GetDB().Model(&model.Product{}).
		Where("category_id = ?", category.ID).
		Count(&productCount)

	if productCount > 0 {
		if categoryDeletePolicy == "block" {
			log.Warn("Category delete blocked by existing products",
				zap.Uint("category_id", category.ID),
				zap.Int64("product_count", productCount))
			return c.JSON(http.StatusConflict, echo.Map{
				"message": "Cannot delete category that is being used by products",
			})
		}

		if result := database.GetDB().
			Where("category_id = ?", category.ID).
			Delete(&model.Product{}); result.Error != nil {
			log.Error("Failed to cascade category deletion",
				zap.Uint("category_id", category.ID), zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Category deletion failed"})
		}
		log.Info("Cascaded product deletion",
			zap.Uint("category_id", category.ID),
			zap.Int64("product_count", productCount))
	}

	if result := database.GetDB().Delete(&category); result.Error != nil {
		log.Error("Failed to delete category", zap.Uint("category_id", category.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Category deletion failed"})
	}

	log.Info("Category deleted", zap.Uint("category_id", category.ID))
	prometheus.RecordResourceOperation("categories", "delete")

	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
