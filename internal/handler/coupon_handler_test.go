package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
)

func TestCreateCouponNormalizesCode(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)

	code := "  summer25 "
	couponType := model.CouponTypePercentage
	value := 25.0
	expiry := time.Now().Add(30 * 24 * time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/api/coupons", CouponRequest{
		Code:       &code,
		Type:       &couponType,
		Value:      &value,
		ExpiryDate: &expiry,
	}, principalFor(admin))

	if err := CreateCoupon(c); err != nil {
		t.Fatalf("CreateCoupon returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got model.Coupon
	db.Where("store_id = ?", store.ID).First(&got)
	if got.Code != "SUMMER25" {
		t.Errorf("code should be trimmed and upper-cased, got %q", got.Code)
	}
}

func TestCreateCouponCodeUniquePerStore(t *testing.T) {
	db := setupTestDB(t)
	storeA := seedStore(t, db, "Store A")
	storeB := seedStore(t, db, "Store B")
	adminA := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &storeA.ID, nil)
	adminB := seedAdmin(t, db, "b@storeb.test", "pass1234", model.RoleStoreAdmin, &storeB.ID, nil)

	db.Create(&model.Coupon{
		Code: "WELCOME10", StoreID: storeA.ID,
		Type: model.CouponTypeFixed, Value: 10,
		ExpiryDate: time.Now().Add(24 * time.Hour), IsActive: true,
	})

	code := "welcome10"
	couponType := model.CouponTypeFixed
	value := 10.0

	// Duplicate within the same store conflicts, case-insensitively
	c, rec := newTestContext(t, http.MethodPost, "/api/coupons", CouponRequest{
		Code: &code, Type: &couponType, Value: &value,
	}, principalFor(adminA))
	if err := CreateCoupon(c); err != nil {
		t.Fatalf("CreateCoupon returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate code in same store should conflict, got %d", rec.Code)
	}

	// The same code is free in another store
	c, rec = newTestContext(t, http.MethodPost, "/api/coupons", CouponRequest{
		Code: &code, Type: &couponType, Value: &value,
	}, principalFor(adminB))
	if err := CreateCoupon(c); err != nil {
		t.Fatalf("CreateCoupon returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("same code in another store should be created, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCouponRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)

	code := "BROKEN"
	couponType := "bogo"
	value := 1.0

	c, rec := newTestContext(t, http.MethodPost, "/api/coupons", CouponRequest{
		Code: &code, Type: &couponType, Value: &value,
	}, principalFor(admin))
	if err := CreateCoupon(c); err != nil {
		t.Fatalf("CreateCoupon returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown coupon type should get 400, got %d", rec.Code)
	}
}
