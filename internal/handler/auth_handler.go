package handler

import (
	"net/http"
	"time"

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

// Login authenticates an admin and returns a signed token. Unknown email and
// wrong password produce the same response so account existence is never
// disclosed.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var admin model.Admin
	result := database.GetDB().Where("email = ?", req.Email).First(&admin)
	if result.Error != nil {
		log.Warn("Login with unknown email", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		log.Warn("Login with invalid password", zap.String("email", req.Email))
		prometheus.AuthErrorsCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	if admin.Status != model.AdminStatusActive {
		log.Warn("Login to inactive account",
			zap.String("email", req.Email),
			zap.String("status", admin.Status))
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Account is not active"})
	}

	now := time.Now()
	database.GetDB().Model(&admin).Update("last_login", now)

	token, err := jwtutil.GenerateToken(admin.ID, admin.Email, admin.Role, admin.StoreID, admin.Permissions)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Token error"})
	}

	log.Info("Admin logged in",
		zap.Uint("admin_id", admin.ID),
		zap.String("email", admin.Email),
		zap.String("role", admin.Role))

	return c.JSON(http.StatusOK, echo.Map{
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

// GetProfile returns the acting admin's own record
func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)

	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	var admin model.Admin
	if result := database.GetDB().First(&admin, principal.ID); result.Error != nil {
		log.Error("Profile lookup failed", zap.Uint("admin_id", principal.ID), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	return c.JSON(http.StatusOK, admin)
}

// UpdateProfile updates the acting admin's own name, email or avatar
func UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)

	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse profile update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	var admin model.Admin
	if result := database.GetDB().First(&admin, principal.ID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	if req.Name != "" {
		admin.Name = req.Name
	}
	if req.Email != "" {
		admin.Email = req.Email
	}
	if req.Avatar != "" {
		admin.Avatar = req.Avatar
	}

	if result := database.GetDB().Save(&admin); result.Error != nil {
		log.Error("Failed to update profile", zap.Uint("admin_id", admin.ID), zap.Error(result.Error))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Profile update failed"})
	}

	log.Info("Profile updated", zap.Uint("admin_id", admin.ID))
	return c.JSON(http.StatusOK, admin)
}

// ChangePassword updates the acting admin's password after verifying the
// current one
func ChangePassword(c echo.Context) error {
	log := logger.FromContext(c)

	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse password change", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request"})
	}

	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "New password is required"})
	}

	var admin model.Admin
	if result := database.GetDB().First(&admin, principal.ID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Admin not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.CurrentPassword)); err != nil {
		log.Warn("Password change with wrong current password", zap.Uint("admin_id", admin.ID))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Current password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Password update failed"})
	}

	if result := database.GetDB().Model(&admin).Update("password", string(hashed)); result.Error != nil {
		log.Error("Failed to update password", zap.Uint("admin_id", admin.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Password update failed"})
	}

	log.Info("Password updated", zap.Uint("admin_id", admin.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}
