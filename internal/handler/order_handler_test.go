package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, storeID uint, number, customer, status string) *model.Order {
	t.Helper()
	order := &model.Order{
		OrderNumber:  number,
		StoreID:      storeID,
		CustomerName: customer,
		Status:       status,
		TotalPrice:   100,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to seed order %s: %v", number, err)
	}
	return order
}

func TestListOrdersScopedAndFiltered(t *testing.T) {
	db := setupTestDB(t)
	storeA := seedStore(t, db, "Store A")
	storeB := seedStore(t, db, "Store B")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &storeA.ID, nil)

	seedOrder(t, db, storeA.ID, "EWA-1001", "Priya", model.OrderStatusPending)
	seedOrder(t, db, storeA.ID, "EWA-1002", "Anita", model.OrderStatusShipped)
	seedOrder(t, db, storeB.ID, "EWA-2001", "Priya", model.OrderStatusPending)

	c, rec := newTestContext(t, http.MethodGet, "/api/orders?status=pending", nil, principalFor(admin))
	if err := ListOrders(c); err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}

	var resp struct {
		Orders []model.Order `json:"orders"`
		Total  int64         `json:"total"`
	}
	decodeBody(t, rec, &resp)
	if resp.Total != 1 || resp.Orders[0].OrderNumber != "EWA-1001" {
		t.Errorf("expected only the store's pending order, got total %d", resp.Total)
	}

	c, rec = newTestContext(t, http.MethodGet, "/api/orders?search=anita", nil, principalFor(admin))
	if err := ListOrders(c); err != nil {
		t.Fatalf("ListOrders returned error: %v", err)
	}
	resp.Orders = nil
	decodeBody(t, rec, &resp)
	if resp.Total != 1 || resp.Orders[0].CustomerName != "Anita" {
		t.Errorf("customer search should match Anita's order, got total %d", resp.Total)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)
	order := seedOrder(t, db, store.ID, "EWA-1001", "Priya", model.OrderStatusProcessing)

	c, rec := newTestContext(t, http.MethodPut, "/api/orders/:id/status", map[string]string{
		"status": model.OrderStatusDelivered,
	}, principalFor(admin))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(order.ID)))

	if err := UpdateOrderStatus(c); err != nil {
		t.Fatalf("UpdateOrderStatus returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got model.Order
	db.First(&got, order.ID)
	if got.Status != model.OrderStatusDelivered {
		t.Errorf("status = %q, want delivered", got.Status)
	}
	if !got.IsDelivered || got.DeliveredAt == nil {
		t.Error("delivery timestamp should be stamped on first delivery")
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)
	order := seedOrder(t, db, store.ID, "EWA-1001", "Priya", model.OrderStatusPending)

	c, rec := newTestContext(t, http.MethodPut, "/api/orders/:id/status", map[string]string{
		"status": "teleported",
	}, principalFor(admin))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(order.ID)))

	if err := UpdateOrderStatus(c); err != nil {
		t.Fatalf("UpdateOrderStatus returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status should get 400, got %d", rec.Code)
	}

	var got model.Order
	db.First(&got, order.ID)
	if got.Status != model.OrderStatusPending {
		t.Errorf("order must be unchanged, got status %q", got.Status)
	}
}

func TestMarkOrderPaidIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)
	order := seedOrder(t, db, store.ID, "EWA-1001", "Priya", model.OrderStatusProcessing)

	for i := 0; i < 2; i++ {
		c, rec := newTestContext(t, http.MethodPut, "/api/orders/:id/pay", nil, principalFor(admin))
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(order.ID)))
		if err := MarkOrderPaid(c); err != nil {
			t.Fatalf("MarkOrderPaid returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	var got model.Order
	db.First(&got, order.ID)
	if !got.IsPaid || got.PaidAt == nil {
		t.Error("order should be marked paid with a timestamp")
	}
}

func TestGetOrderCrossTenantReadsAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	storeA := seedStore(t, db, "Store A")
	storeB := seedStore(t, db, "Store B")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &storeA.ID, nil)
	foreign := seedOrder(t, db, storeB.ID, "EWA-2001", "Priya", model.OrderStatusPending)

	c, rec := newTestContext(t, http.MethodGet, "/api/orders/:id", nil, principalFor(admin))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(foreign.ID)))

	if err := GetOrder(c); err != nil {
		t.Fatalf("GetOrder returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign order should read as 404, got %d", rec.Code)
	}
}
