package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Shalinisinha22/Ewa-admin/internal/authz"
	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/config"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/jwtutil"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var initOnce sync.Once

// setupTestDB swaps the global database for an in-memory SQLite instance
// and initializes the process-wide singletons exactly once
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	initOnce.Do(func() {
		prometheus.InitMetrics(&config.Config{
			Metrics: config.MetricsConfig{Prefix: "test"},
		})
		jwtutil.Initialize(&config.JWTConfig{
			SigningKey:      "test-signing-key",
			ExpirationHours: 1,
		})
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database: %v", err)
	}
	// One connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Store{},
		&model.Admin{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.Coupon{},
		&model.Banner{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
	return db
}

func seedStore(t *testing.T, db *gorm.DB, name string) *model.Store {
	t.Helper()
	store := &model.Store{Name: name, Slug: slugify(name), Status: model.StoreStatusActive}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to seed store %s: %v", name, err)
	}
	return store
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password, role string, storeID *uint, permissions []string) *model.Admin {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	admin := &model.Admin{
		Name:        strings.Split(email, "@")[0],
		Email:       email,
		Password:    string(hashed),
		Status:      model.AdminStatusActive,
		Role:        role,
		StoreID:     storeID,
		Permissions: permissions,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to seed admin %s: %v", email, err)
	}
	return admin
}

// newTestContext builds an echo context with an optional JSON body and the
// acting principal, the way AuthMiddleware would have left it
func newTestContext(t *testing.T, method, target string, body interface{}, principal *authz.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	if principal != nil {
		c.Set("principal", principal)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func principalFor(admin *model.Admin) *authz.Principal {
	return authz.NewPrincipal(admin)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"", 1, 10, 0},
		{"page=3&limit=20", 3, 20, 40},
		{"page=0&limit=-5", 1, 10, 0},
		{"page=abc&limit=xyz", 1, 10, 0},
	}

	for _, tt := range tests {
		c, _ := newTestContext(t, http.MethodGet, "/?"+tt.query, nil, nil)
		page, limit, offset := parsePagination(c)
		if page != tt.wantPage || limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("parsePagination(%q) = (%d, %d, %d), want (%d, %d, %d)",
				tt.query, page, limit, offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}

	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
