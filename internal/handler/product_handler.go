package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductRequest defines the structure for product creation/update requests.
// Pointer fields distinguish "not provided" from explicit zero values so
// partial updates merge correctly.
type ProductRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Brand             *string  `json:"brand"`
	SKU               *string  `json:"sku"`
	Price             *float64 `json:"price"`
	DiscountPrice     *float64 `json:"discount_price"`
	Stock             *int     `json:"stock"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	CategoryID        *uint    `json:"category_id"`
	Images            []string `json:"images"`
	Featured          *bool    `json:"featured"`
	Status            *string  `json:"status"`
}

// productFilters applies the kind-specific list filters after store scoping
func productFilters(c echo.Context, query *gorm.DB) *gorm.DB {
	if keyword := c.QueryParam("keyword"); keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if featured := c.QueryParam("featured"); featured != "" {
		query = query.Where("featured = ?", featured == "true")
	}
	if minPrice := c.QueryParam("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.QueryParam("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	if c.QueryParam("inStock") != "" {
		query = query.Where("stock > 0")
	}
	return query
}

// ListProducts returns a paginated, store-scoped product listing with
// keyword search and kind-specific filters
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	page, limit, offset := parsePagination(c)

	query := productFilters(c, scoped(database.GetDB().Model(&model.Product{}), storeID))

	var total int64
	query.Count(&total)

	var products []model.Product
	result := query.Preload("Category").Order("created_at DESC").Offset(offset).Limit(limit).Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"page":     page,
		"pages":    totalPages(total, limit),
		"total":    total,
	})
}

// GetProduct returns one store-scoped product. A product in a foreign store
// is reported as not found, never as forbidden.
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var product model.Product
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).
		Preload("Category").First(&product)
	if result.Error != nil {
		log.Warn("Product not found", zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product in the effective store. A referenced
// category must exist within the same store.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}
	if storeID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store context is required"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse product creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if req.Name == nil || *req.Name == "" || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name and price are required"})
	}

	if req.CategoryID != nil {
		var count int64
		database.GetDB().Model(&model.Category{}).
			Where("id = ? AND store_id = ?", *req.CategoryID, *storeID).
			Count(&count)
		if count == 0 {
			log.Warn("Product references missing category",
				zap.Uint("category_id", *req.CategoryID),
				zap.Uint("store_id", *storeID))
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Category not found"})
		}
	}

	product := model.Product{
		Name:    *req.Name,
		Price:   *req.Price,
		StoreID: *storeID,
		Images:  req.Images,
		Status:  model.ProductStatusDraft,
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	product.DiscountPrice = req.DiscountPrice
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	product.CategoryID = req.CategoryID
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&product); result.Error != nil {
		log.Error("Failed to create product", zap.String("name", product.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Product creation failed"})
	}

	database.GetDB().Preload("Category").First(&product, product.ID)

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Uint("store_id", product.StoreID))
	prometheus.RecordResourceOperation("products", "create")

	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct merges the provided fields into a store-scoped product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse product update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var product model.Product
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&product)
	if result.Error != nil {
		log.Warn("Product not found for update", zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}

	if req.CategoryID != nil {
		var count int64
		database.GetDB().Model(&model.Category{}).
			Where("id = ? AND store_id = ?", *req.CategoryID, product.StoreID).
			Count(&count)
		if count == 0 {
			log.Warn("Product update references missing category",
				zap.Uint("category_id", *req.CategoryID),
				zap.Uint("store_id", product.StoreID))
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Category not found"})
		}
		product.CategoryID = req.CategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		product.DiscountPrice = req.DiscountPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if result := database.GetDB().Save(&product); result.Error != nil {
		log.Error("Failed to update product", zap.Uint("product_id", product.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Product update failed"})
	}

	database.GetDB().Preload("Category").First(&product, product.ID)

	log.Info("Product updated", zap.Uint("product_id", product.ID))
	prometheus.RecordResourceOperation("products", "update")

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a store-scoped product
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var product model.Product
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&product)
	if result.Error != nil {
		log.Warn("Product not found for deletion", zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}

	if result := database.GetDB().Delete(&product); result.Error != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", product.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Product deletion failed"})
	}

	log.Info("Product deleted", zap.Uint("product_id", product.ID))
	prometheus.RecordResourceOperation("products", "delete")

	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// GetFeaturedProducts returns the store's active featured products
func GetFeaturedProducts(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	limit := defaultLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}

	var products []model.Product
	result := scoped(database.GetDB().Model(&model.Product{}), storeID).
		Where("featured = ? AND status = ?", true, model.ProductStatusActive).
		Preload("Category").Order("created_at DESC").Limit(limit).Find(&products)
	if result.Error != nil {
		log.Error("Failed to list featured products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, products)
}

// GetProductsByCategory returns the store's active products in one category
func GetProductsByCategory(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	page, limit, offset := parsePagination(c)

	query := scoped(database.GetDB().Model(&model.Product{}), storeID).
		Where("category_id = ? AND status = ?", c.Param("categoryId"), model.ProductStatusActive)

	var total int64
	query.Count(&total)

	var products []model.Product
	result := query.Preload("Category").Order("created_at DESC").Offset(offset).Limit(limit).Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products by category", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"page":     page,
		"pages":    totalPages(total, limit),
		"total":    total,
	})
}

// SearchProducts searches the store's active products with the same filter
// set as the listing endpoint
func SearchProducts(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	page, limit, offset := parsePagination(c)

	query := scoped(database.GetDB().Model(&model.Product{}), storeID).
		Where("status = ?", model.ProductStatusActive)

	if q := c.QueryParam("q"); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	if minPrice := c.QueryParam("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.QueryParam("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	if c.QueryParam("inStock") == "true" {
		query = query.Where("stock > 0")
	}

	var total int64
	query.Count(&total)

	var products []model.Product
	result := query.Preload("Category").Order("created_at DESC").Offset(offset).Limit(limit).Find(&products)
	if result.Error != nil {
		log.Error("Failed to search products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve products"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": products,
		"page":     page,
		"pages":    totalPages(total, limit),
		"total":    total,
	})
}

// UpdateProductStock applies a set/add/subtract stock mutation and runs the
// status machine: zero stock forces out_of_stock, and restocking
// reactivates only products that out-of-stocked automatically.
func UpdateProductStock(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req struct {
		Quantity  int    `json:"quantity"`
		Operation string `json:"operation"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse stock update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var product model.Product
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&product)
	if result.Error != nil {
		log.Warn("Product not found for stock update", zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}

	switch req.Operation {
	case "set":
		product.Stock = req.Quantity
	case "add":
		product.Stock += req.Quantity
	case "subtract":
		product.Stock -= req.Quantity
		if product.Stock < 0 {
			product.Stock = 0
		}
	default:
		log.Warn("Invalid stock operation",
			zap.String("operation", req.Operation),
			zap.String("product_id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid operation"})
	}

	if product.Stock <= 0 {
		product.Status = model.ProductStatusOutOfStock
	} else if product.Status == model.ProductStatusOutOfStock {
		product.Status = model.ProductStatusActive
	}

	if result := database.GetDB().Save(&product); result.Error != nil {
		log.Error("Failed to update stock", zap.Uint("product_id", product.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Stock update failed"})
	}

	log.Info("Stock updated",
		zap.Uint("product_id", product.ID),
		zap.String("operation", req.Operation),
		zap.Int("stock", product.Stock),
		zap.String("status", product.Status))
	prometheus.RecordResourceOperation("products", "stock")

	return c.JSON(http.StatusOK, product)
}

// bulkUpdatableFields is the allowlist for bulk updates; anything else in
// the updates payload is dropped.
var bulkUpdatableFields = map[string]bool{
	"status":         true,
	"featured":       true,
	"price":          true,
	"discount_price": true,
	"brand":          true,
	"category_id":    true,
}

// BulkUpdateProducts applies one update to many products at once, scoped by
// store. Foreign-store ids are left untouched and the reported count only
// reflects rows that actually matched.
func BulkUpdateProducts(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}
	if storeID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store context is required"})
	}

	var req struct {
		ProductIDs []uint                 `json:"productIds"`
		Updates    map[string]interface{} `json:"updates"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse bulk update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if len(req.ProductIDs) == 0 || len(req.Updates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "productIds and updates are required"})
	}

	updates := make(map[string]interface{})
	for field, value := range req.Updates {
		if bulkUpdatableFields[field] {
			updates[field] = value
		}
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No updatable fields provided"})
	}

	if raw, ok := updates["category_id"]; ok {
		if id, ok := raw.(float64); ok {
			var count int64
			database.GetDB().Model(&model.Category{}).
				Where("id = ? AND store_id = ?", uint(id), *storeID).
				Count(&count)
			if count == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "Category not found"})
			}
		}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := database.GetDB().Model(&model.Product{}).
		Where("id IN ? AND store_id = ?", req.ProductIDs, *storeID).
		Updates(updates)
	if result.Error != nil {
		log.Error("Bulk update failed", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Bulk update failed"})
	}

	log.Info("Products bulk updated",
		zap.Int64("modified_count", result.RowsAffected),
		zap.Uint("store_id", *storeID))
	prometheus.RecordResourceOperation("products", "bulk_update")

	return c.JSON(http.StatusOK, echo.Map{
		"message":       strconv.FormatInt(result.RowsAffected, 10) + " products updated successfully",
		"modifiedCount": result.RowsAffected,
	})
}

// productOverview aggregates the stats endpoint's headline numbers
type productOverview struct {
	TotalProducts      int64   `json:"totalProducts"`
	ActiveProducts     int64   `json:"activeProducts"`
	DraftProducts      int64   `json:"draftProducts"`
	OutOfStockProducts int64   `json:"outOfStockProducts"`
	FeaturedProducts   int64   `json:"featuredProducts"`
	TotalValue         float64 `json:"totalValue"`
	AveragePrice       float64 `json:"averagePrice"`
	LowStockProducts   int64   `json:"lowStockProducts"`
}

// GetProductStats returns inventory aggregates and a per-category breakdown
// for the effective store
func GetProductStats(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	base := func() *gorm.DB {
		return scoped(database.GetDB().Model(&model.Product{}), storeID)
	}

	var overview productOverview
	base().Count(&overview.TotalProducts)
	base().Where("status = ?", model.ProductStatusActive).Count(&overview.ActiveProducts)
	base().Where("status = ?", model.ProductStatusDraft).Count(&overview.DraftProducts)
	base().Where("status = ?", model.ProductStatusOutOfStock).Count(&overview.OutOfStockProducts)
	base().Where("featured = ?", true).Count(&overview.FeaturedProducts)
	base().Where("stock <= low_stock_threshold").Count(&overview.LowStockProducts)

	var sums struct {
		TotalValue   float64
		AveragePrice float64
	}
	if err := base().
		Select("COALESCE(SUM(price * stock), 0) as total_value, COALESCE(AVG(price), 0) as average_price").
		Scan(&sums).Error; err != nil {
		log.Error("Failed to aggregate product stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve stats"})
	}
	overview.TotalValue = sums.TotalValue
	overview.AveragePrice = sums.AveragePrice

	type categoryCount struct {
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}
	var breakdown []categoryCount
	if err := scoped(database.GetDB().Model(&model.Product{}), storeID).
		Select("categories.name as name, COUNT(products.id) as count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Group("categories.name").
		Order("count DESC").
		Scan(&breakdown).Error; err != nil {
		log.Error("Failed to aggregate category breakdown", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve stats"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"overview":          overview,
		"categoryBreakdown": breakdown,
	})
}
