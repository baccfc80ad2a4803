package handler

import (
	"net/http"
	"testing"

	"github.com/Shalinisinha22/Ewa-admin/internal/model"
)

func TestCreateBannerValidatesPosition(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleStoreAdmin, &store.ID, nil)

	title := "Festive Sale"
	image := "https://cdn.example.test/banners/festive.jpg"

	badPosition := "footer"
	c, rec := newTestContext(t, http.MethodPost, "/api/banners", BannerRequest{
		Title: &title, Image: &image, Position: &badPosition,
	}, principalFor(admin))
	if err := CreateBanner(c); err != nil {
		t.Fatalf("CreateBanner returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown position should get 400, got %d", rec.Code)
	}

	goodPosition := "hero"
	c, rec = newTestContext(t, http.MethodPost, "/api/banners", BannerRequest{
		Title: &title, Image: &image, Position: &goodPosition,
	}, principalFor(admin))
	if err := CreateBanner(c); err != nil {
		t.Fatalf("CreateBanner returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("hero banner should be created, got %d: %s", rec.Code, rec.Body.String())
	}

	var got model.Banner
	db.Where("store_id = ?", store.ID).First(&got)
	if got.Position != "hero" || !got.IsActive {
		t.Errorf("banner should be active at position hero, got %q active %v", got.Position, got.IsActive)
	}
}

func TestListBannersFilteredByPosition(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Store A")
	admin := seedAdmin(t, db, "a@storea.test", "pass1234", model.RoleManager, &store.ID, []string{"banners"})

	db.Create(&model.Banner{Title: "Hero", Image: "h.jpg", Position: "hero", StoreID: store.ID, IsActive: true})
	db.Create(&model.Banner{Title: "Side", Image: "s.jpg", Position: "sidebar", StoreID: store.ID, IsActive: true})

	c, rec := newTestContext(t, http.MethodGet, "/api/banners?position=sidebar", nil, principalFor(admin))
	if err := ListBanners(c); err != nil {
		t.Fatalf("ListBanners returned error: %v", err)
	}

	var banners []model.Banner
	decodeBody(t, rec, &banners)
	if len(banners) != 1 || banners[0].Position != "sidebar" {
		t.Errorf("expected only the sidebar banner, got %d", len(banners))
	}
}
