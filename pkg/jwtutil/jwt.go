package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.JWTConfig

// AdminClaims represents the JWT claims for an authenticated admin
type AdminClaims struct {
	AdminID     uint     `json:"admin_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	StoreID     *uint    `json:"store_id,omitempty"` // nil for super_admin
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Initialize sets the JWT configuration used for signing and validation
func Initialize(jwtConfig *config.JWTConfig) {
	cfg = jwtConfig
}

// GenerateToken creates a signed JWT for the given admin identity
func GenerateToken(adminID uint, email, role string, storeID *uint, permissions []string) (string, error) {
	if cfg == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := AdminClaims{
		AdminID:     adminID,
		Email:       email,
		Role:        role,
		StoreID:     storeID,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SigningKey))
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*AdminClaims, error) {
	if cfg == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&AdminClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.SigningKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
