package jwtutil

import (
	"testing"

	"github.com/Shalinisinha22/Ewa-admin/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "unit-test-key", ExpirationHours: 1})

	storeID := uint(7)
	token, err := GenerateToken(42, "maya@store.test", "manager", &storeID, []string{"products", "orders"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.AdminID != 42 || claims.Email != "maya@store.test" || claims.Role != "manager" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.StoreID == nil || *claims.StoreID != storeID {
		t.Error("store binding should round-trip through the token")
	}
	if len(claims.Permissions) != 2 {
		t.Errorf("permissions should round-trip, got %v", claims.Permissions)
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	token, err := GenerateToken(1, "a@b.test", "super_admin", nil, nil)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "key-two", ExpirationHours: 1})
	if _, err := ValidateToken(token); err == nil {
		t.Error("a token signed with another key must not validate")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "unit-test-key", ExpirationHours: -1})
	token, err := GenerateToken(1, "a@b.test", "manager", nil, nil)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Error("an expired token must not validate")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "unit-test-key", ExpirationHours: 1})
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("garbage input must not validate")
	}
}
