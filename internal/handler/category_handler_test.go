package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"gorm.io/gorm"
)

func seedCategory(t *testing.T, db *gorm.DB, storeID uint, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Slug: slugify(name), StoreID: storeID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return category
}

func TestCreateCategoryNameUniquePerStore(t *testing.T) {
	db := setupTestDB(t)
	storeA := seedStore(t, db, "Store A")
	storeB := seedStore(t, db, "Store B")
	adminA := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &storeA.ID, nil)
	adminB := seedAdmin(t, db, "b@storeb.test", "pass1234", model.RoleStoreAdmin, &storeB.ID, nil)

	seedCategory(t, db, storeA.ID, "Sarees")

	name := "Sarees"
	c, rec := newTestContext(t, http.MethodPost, "/api/categories", CategoryRequest{Name: &name}, principalFor(adminA))
	if err := CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate name in same store should conflict, got %d", rec.Code)
	}

	// The same name in another store is fine
	c, rec = newTestContext(t, http.MethodPost, "/api/categories", CategoryRequest{Name: &name}, principalFor(adminB))
	if err := CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("same name in another store should be created, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCategoryForeignParentRejected(t *testing.T) {
	db := setupTestDB(t)
	storeA := seedStore(t, db, "Store A")
	storeB := seedStore(t, db, "Store B")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &storeA.ID, nil)
	foreignParent := seedCategory(t, db, storeB.ID, "Accessories")

	name := "Bags"
	c, rec := newTestContext(t, http.MethodPost, "/api/categories", CategoryRequest{
		Name:     &name,
		ParentID: &foreignParent.ID,
	}, principalFor(admin))

	if err := CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("foreign parent should be rejected with 400, got %d", rec.Code)
	}
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	db := setupTestDB(t)
	SetCategoryDeletePolicy("block")

	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)
	category := seedCategory(t, db, store.ID, "Sarees")

	product := seedProduct(t, db, store.ID, "Silk Saree", 120, 5, model.ProductStatusActive)
	db.Model(product).Update("category_id", category.ID)

	c, rec := newTestContext(t, http.MethodDelete, "/api/categories/:id", nil, principalFor(admin))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(category.ID)))

	if err := DeleteCategory(c); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("delete of used category should conflict under block policy, got %d", rec.Code)
	}

	var count int64
	db.Model(&model.Category{}).Where("id = ?", category.ID).Count(&count)
	if count != 1 {
		t.Error("category must survive a blocked delete")
	}
}

func TestDeleteCategoryCascade(t *testing.T) {
	db := setupTestDB(t)
	SetCategoryDeletePolicy("cascade")
	defer SetCategoryDeletePolicy("block")

	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)
	category := seedCategory(t, db, store.ID, "Sarees")

	inCat := seedProduct(t, db, store.ID, "Silk Saree", 120, 5, model.ProductStatusActive)
	db.Model(inCat).Update("category_id", category.ID)
	outOfCat := seedProduct(t, db, store.ID, "Cotton Kurta", 40, 3, model.ProductStatusActive)

	c, rec := newTestContext(t, http.MethodDelete, "/api/categories/:id", nil, principalFor(admin))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(category.ID)))

	if err := DeleteCategory(c); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("cascade delete should succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	var count int64
	db.Model(&model.Category{}).Where("id = ?", category.ID).Count(&count)
	if count != 0 {
		t.Error("category should be gone after cascade delete")
	}
	db.Model(&model.Product{}).Where("id = ?", inCat.ID).Count(&count)
	if count != 0 {
		t.Error("products in the category should be gone after cascade delete")
	}
	db.Model(&model.Product{}).Where("id = ?", outOfCat.ID).Count(&count)
	if count != 1 {
		t.Error("products outside the category must survive a cascade delete")
	}
}

func TestDeleteEmptyCategory(t *testing.T) {
	db := setupTestDB(t)
	SetCategoryDeletePolicy("block")

	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)
	category := seedCategory(t, db, store.ID, "Sarees")

	c, rec := newTestContext(t, http.MethodDelete, "/api/categories/:id", nil, principalFor(admin))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(category.ID)))

	if err := DeleteCategory(c); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("empty category should delete under block policy, got %d", rec.Code)
	}
}

func TestGetCategoryCrossTenantReadsAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	storeA := seedStore(t, db, "Store A")
	storeB := seedStore(t, db, "Store B")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &storeA.ID, nil)
	foreign := seedCategory(t, db, storeB.ID, "Accessories")

	c, rec := newTestContext(t, http.MethodGet, "/api/categories/:id", nil, principalFor(admin))
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(foreign.ID)))

	if err := GetCategory(c); err != nil {
		t.Fatalf("GetCategory returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign category should read as 404, got %d", rec.Code)
	}
}
