package handler

import (
	"net/http"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BannerRequest defines the structure for banner creation/update requests
type BannerRequest struct {
	Title     *string    `json:"title"`
	Image     *string    `json:"image"`
	Link      *string    `json:"link"`
	Position  *string    `json:"position"`
	IsActive  *bool      `json:"is_active"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ListBanners returns the store's banners, optionally filtered by position
func ListBanners(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	query := scoped(database.GetDB().Model(&model.Banner{}), storeID)

	if position := c.QueryParam("position"); position != "" {
		query = query.Where("position = ?", position)
	}
	if active := c.QueryParam("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var banners []model.Banner
	result := query.Order("created_at DESC").Find(&banners)
	if result.Error != nil {
		log.Error("Failed to list banners", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve banners"})
	}

	return c.JSON(http.StatusOK, banners)
}

// GetBanner returns one store-scoped banner
func GetBanner(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var banner model.Banner
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&banner)
	if result.Error != nil {
		log.Warn("Banner not found", zap.String("banner_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Banner not found"})
	}

	return c.JSON(http.StatusOK, banner)
}

// CreateBanner creates a banner in the effective store. The position must
// be one of the storefront's known placements.
func CreateBanner(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}
	if storeID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store context is required"})
	}

	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse banner creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if req.Title == nil || *req.Title == "" || req.Image == nil || *req.Image == "" || req.Position == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title, image and position are required"})
	}
	if !model.ValidBannerPosition(*req.Position) {
		log.Warn("Invalid banner position", zap.String("position", *req.Position))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid banner position"})
	}

	banner := model.Banner{
		Title:     *req.Title,
		Image:     *req.Image,
		Position:  *req.Position,
		StoreID:   *storeID,
		IsActive:  true,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Link != nil {
		banner.Link = *req.Link
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if result := database.GetDB().Create(&banner); result.Error != nil {
		log.Error("Failed to create banner", zap.String("title", banner.Title), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Banner creation failed"})
	}

	log.Info("Banner created",
		zap.Uint("banner_id", banner.ID),
		zap.String("position", banner.Position),
		zap.Uint("store_id", banner.StoreID))
	prometheus.RecordResourceOperation("banners", "create")

	return c.JSON(http.StatusCreated, banner)
}

// UpdateBanner merges the provided fields into a store-scoped banner
func UpdateBanner(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req BannerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse banner update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var banner model.Banner
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&banner)
	if result.Error != nil {
		log.Warn("Banner not found for update", zap.String("banner_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Banner not found"})
	}

	if req.Position != nil {
		if !model.ValidBannerPosition(*req.Position) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid banner position"})
		}
		banner.Position = *req.Position
	}
	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Image != nil {
		banner.Image = *req.Image
	}
	if req.Link != nil {
		banner.Link = *req.Link
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		banner.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		banner.EndDate = req.EndDate
	}

	if result := database.GetDB().Save(&banner); result.Error != nil {
		log.Error("Failed to update banner", zap.Uint("banner_id", banner.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Banner update failed"})
	}

	log.Info("Banner updated", zap.Uint("banner_id", banner.ID))
	prometheus.RecordResourceOperation("banners", "update")

	return c.JSON(http.StatusOK, banner)
}

// DeleteBanner removes a store-scoped banner
func DeleteBanner(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var banner model.Banner
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&banner)
	if result.Error != nil {
		log.Warn("Banner not found for deletion", zap.String("banner_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Banner not found"})
	}

	if result := database.GetDB().Delete(&banner); result.Error != nil {
		log.Error("Failed to delete banner", zap.Uint("banner_id", banner.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Banner deletion failed"})
	}

	log.Info("Banner deleted", zap.Uint("banner_id", banner.ID))
	prometheus.RecordResourceOperation("banners", "delete")

	return c.JSON(http.StatusOK, echo.Map{"message": "Banner deleted successfully"})
}
