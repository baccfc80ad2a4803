package middleware

import (
	"net/http"
	"strings"

	"github.com/Shalinisinha22/Ewa-admin/internal/authz"
	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/jwtutil"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the bearer token and resolves the acting admin.
// The admin row is re-fetched on every request so a deactivated or deleted
// account loses access immediately, whatever its token still claims.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, invalid token format"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid or expired token", zap.Error(err))
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, token failed"})
		}

		var admin model.Admin
		if result := database.GetDB().First(&admin, claims.AdminID); result.Error != nil {
			log.Warn("Token references unknown admin", zap.Uint("admin_id", claims.AdminID))
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, admin not found"})
		}

		if admin.Status != model.AdminStatusActive {
			log.Warn("Inactive account attempted access",
				zap.Uint("admin_id", admin.ID),
				zap.String("status", admin.Status))
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Account is not active"})
		}

		c.Set("principal", authz.NewPrincipal(&admin))
		return next(c)
	}
}

// RequirePermission gates a route group on the access policy for one
// resource kind. Must run after AuthMiddleware.
func RequirePermission(resource string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			principal, ok := PrincipalFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
			}

			if err := authz.Authorize(principal, resource); err != nil {
				log.Warn("Permission denied",
					zap.Uint("admin_id", principal.ID),
					zap.String("role", principal.Role),
					zap.String("resource", resource))
				prometheus.ForbiddenCounter.Inc()
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
			}

			return next(c)
		}
	}
}

// RequireRole gates a route on an explicit role list. Must run after
// AuthMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			principal, ok := PrincipalFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
			}

			for _, role := range roles {
				if principal.Role == role {
					return next(c)
				}
			}

			log.Warn("Role denied",
				zap.Uint("admin_id", principal.ID),
				zap.String("role", principal.Role))
			prometheus.ForbiddenCounter.Inc()
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
		}
	}
}

// PrincipalFromContext retrieves the acting admin set by AuthMiddleware
func PrincipalFromContext(c echo.Context) (*authz.Principal, bool) {
	principal, ok := c.Get("principal").(*authz.Principal)
	return principal, ok
}
