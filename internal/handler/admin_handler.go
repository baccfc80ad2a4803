package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/internal/authz"
	"github.com/Shalinisinha22/Ewa-admin/internal/middleware"
	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/jwtutil"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminRequest defines the structure for admin creation requests
type AdminRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Status      string   `json:"status"`
	StoreName   string   `json:"store_name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// CreateAdmin creates a new admin account. super_admin may target any store
// by name, creating it when absent; store_admin only its own store.
func CreateAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	var req AdminRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse admin creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name, email and password are required"})
	}

	var count int64
	database.GetDB().Model(&model.Admin{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		log.Warn("Admin with this email already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"message": "Admin with this email already exists"})
	}

	// Resolve the target store
	var store model.Store
	if principal.IsSuperAdmin() {
		if req.StoreName == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Store name is required"})
		}
		result := database.GetDB().Where("name = ?", req.StoreName).First(&store)
		if result.Error != nil {
			store = model.Store{
				Name:   req.StoreName,
				Slug:   slugify(req.StoreName),
				Status: model.StoreStatusActive,
			}
			if result := database.GetDB().Create(&store); result.Error != nil {
				log.Error("Failed to create store", zap.String("name", req.StoreName), zap.Error(result.Error))
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Store creation failed"})
			}
			log.Info("Store created", zap.Uint("store_id", store.ID), zap.String("name", store.Name))
		}
	} else {
		if result := database.GetDB().First(&store, *principal.StoreID); result.Error != nil {
			log.Error("Store not found", zap.Uint("store_id", *principal.StoreID))
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Store not found"})
		}
	}

	// Only super_admin assigns roles; anything a lower role submits falls
	// back to manager (see authz.RoleChangeSilentIgnore).
	role := model.RoleManager
	if req.Role != "" && authz.CanAssignRole(principal) {
		role = req.Role
	}

	status := req.Status
	if status == "" {
		status = model.AdminStatusActive
	}

	permissions := req.Permissions
	if len(permissions) == 0 {
		permissions = model.DefaultManagerPermissions
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Admin creation failed"})
	}

	admin := model.Admin{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		Status:      status,
		StoreName:   store.Name,
		StoreID:     &store.ID,
		Role:        role,
		Permissions: permissions,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&admin); result.Error != nil {
		log.Error("Failed to create admin", zap.String("email", req.Email), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Admin creation failed"})
	}

	token, err := jwtutil.GenerateToken(admin.ID, admin.Email, admin.Role, admin.StoreID, admin.Permissions)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Token error"})
	}

	log.Info("Admin created",
		zap.Uint("admin_id", admin.ID),
		zap.String("email", admin.Email),
		zap.String("role", admin.Role),
		zap.Uint("store_id", store.ID))
	prometheus.RecordResourceOperation("admins", "create")

	return c.JSON(http.StatusCreated, echo.Map{
		"id":          admin.ID,
		"name":        admin.Name,
		"email":       admin.Email,
		"status":      admin.Status,
		"store_name":  admin.StoreName,
		"store_id":    admin.StoreID,
		"role":        admin.Role,
		"permissions": admin.Permissions,
		"token":       token,
	})
}

// ListAdmins returns a paginated, store-scoped admin listing
func ListAdmins(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	page, limit, offset := parsePagination(c)

	query := scoped(database.GetDB().Model(&model.Admin{}), storeID)

	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(store_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if role := c.QueryParam("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var admins []model.Admin
	result := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&admins)
	if result.Error != nil {
		log.Error("Failed to list admins", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve admins"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"admins": admins,
		"page":   page,
		"pages":  totalPages(total, limit),
		"total":  total,
	})
}

// GetAdmin returns one admin, scoped to the effective store. A record in a
// foreign store is indistinguishable from a missing one.
func GetAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	_, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var admin model.Admin
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&admin)
	if result.Error != nil {
		log.Warn("Admin not found", zap.String("admin_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	return c.JSON(http.StatusOK, admin)
}

// UpdateAdmin applies a partial update to an admin record. The role field is
// only honored for super_admin; lower roles' role changes are dropped
// without an error, matching the platform's original behavior.
func UpdateAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	principal, storeID, err := resolveScope(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	var req AdminRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse admin update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var admin model.Admin
	result := scoped(database.GetDB().Where("id = ?", c.Param("id")), storeID).First(&admin)
	if result.Error != nil {
		log.Warn("Admin not found for update", zap.String("admin_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	if req.Name != "" {
		admin.Name = req.Name
	}
	if req.Email != "" {
		admin.Email = req.Email
	}
	if req.Status != "" {
		admin.Status = req.Status
	}
	if req.Role != "" {
		if authz.CanAssignRole(principal) {
			admin.Role = req.Role
		} else if !authz.RoleChangeSilentIgnore {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Only super admin can change roles"})
		}
	}
	if req.Permissions != nil {
		admin.Permissions = req.Permissions
	}

	if result := database.GetDB().Save(&admin); result.Error != nil {
		log.Error("Failed to update admin", zap.Uint("admin_id", admin.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Admin update failed"})
	}

	log.Info("Admin updated", zap.Uint("admin_id", admin.ID))
	prometheus.RecordResourceOperation("admins", "update")

	return c.JSON(http.StatusOK, admin)
}

// DeleteAdmin removes an admin account. Deleting your own account is always
// rejected, whatever the role.
func DeleteAdmin(c echo.Context) error {
	log := logger.FromContext(c)

	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	var admin model.Admin
	if result := database.GetDB().First(&admin, c.Param("id")); result.Error != nil {
		log.Warn("Admin not found for deletion", zap.String("admin_id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	if err := authz.CheckDelete(principal, admin.ID); err != nil {
		if err == authz.ErrSelfDelete {
			log.Warn("Self-delete attempt", zap.Uint("admin_id", principal.ID))
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Cannot delete your own account"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	}

	if result := database.GetDB().Delete(&admin); result.Error != nil {
		log.Error("Failed to delete admin", zap.Uint("admin_id", admin.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Admin deletion failed"})
	}

	log.Info("Admin deleted", zap.Uint("admin_id", admin.ID), zap.Uint("deleted_by", principal.ID))
	prometheus.RecordResourceOperation("admins", "delete")

	return c.JSON(http.StatusOK, echo.Map{"message": "Admin deleted successfully"})
}

// slugify lowercases a name and replaces whitespace runs with hyphens
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
