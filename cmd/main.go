package main

import (
	"github.com/Shalinisinha22/Ewa-admin/internal/handler"
	mid "github.com/Shalinisinha22/Ewa-admin/internal/middleware"
	"github.com/Shalinisinha22/Ewa-admin/internal/model"
	"github.com/Shalinisinha22/Ewa-admin/pkg/config"
	"github.com/Shalinisinha22/Ewa-admin/pkg/database"
	"github.com/Shalinisinha22/Ewa-admin/pkg/jwtutil"
	"github.com/Shalinisinha22/Ewa-admin/pkg/logger"
	"github.com/Shalinisinha22/Ewa-admin/pkg/uploader"
	"github.com/Shalinisinha22/Ewa-admin/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; production environments set variables directly
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting admin API",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	uploader.Initialize(&appConfig.Upload)
	handler.SetCategoryDeletePolicy(appConfig.Policy.CategoryDeletePolicy)

	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.Store{},
		&model.Admin{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.Coupon{},
		&model.Banner{},
	); err != nil {
		log.Fatal("Failed to migrate models", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api/health", handler.HealthCheck)

	// Admin accounts and sessions
	adminAPI := e.Group("/api/admin")
	adminAPI.POST("/login", handler.Login)

	profileAPI := adminAPI.Group("", mid.AuthMiddleware)
	profileAPI.GET("/profile", handler.GetProfile)
	profileAPI.PUT("/profile", handler.UpdateProfile)
	profileAPI.PUT("/profile/password", handler.ChangePassword)

	manageAPI := adminAPI.Group("", mid.AuthMiddleware,
		mid.RequireRole(model.RoleSuperAdmin, model.RoleStoreAdmin))
	manageAPI.POST("/register", handler.CreateAdmin)
	manageAPI.GET("", handler.ListAdmins)
	manageAPI.GET("/:id", handler.GetAdmin)
	manageAPI.PUT("/:id", handler.UpdateAdmin)
	manageAPI.DELETE("/:id", handler.DeleteAdmin, mid.RequireRole(model.RoleSuperAdmin))

	// Stores are platform-level; only super_admin touches them
	storeAPI := e.Group("/api/stores", mid.AuthMiddleware, mid.RequireRole(model.RoleSuperAdmin))
	storeAPI.GET("", handler.ListStores)
	storeAPI.GET("/:id", handler.GetStore)
	storeAPI.POST("", handler.CreateStore)
	storeAPI.PUT("/:id", handler.UpdateStore)
	storeAPI.DELETE("/:id", handler.DeleteStore)

	productAPI := e.Group("/api/products", mid.AuthMiddleware, mid.RequirePermission("products"))
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/featured", handler.GetFeaturedProducts)
	productAPI.GET("/search", handler.SearchProducts)
	productAPI.GET("/stats", handler.GetProductStats)
	productAPI.GET("/category/:categoryId", handler.GetProductsByCategory)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/bulk/update", handler.BulkUpdateProducts)
	productAPI.PUT("/:id/stock", handler.UpdateProductStock)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)

	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware, mid.RequirePermission("categories"))
	categoryAPI.GET("", handler.ListCategories)
	categoryAPI.GET("/:id", handler.GetCategory)
	categoryAPI.POST("", handler.CreateCategory)
	categoryAPI.PUT("/:id", handler.UpdateCategory)
	categoryAPI.DELETE("/:id", handler.DeleteCategory)

	orderAPI := e.Group("/api/orders", mid.AuthMiddleware, mid.RequirePermission("orders"))
	orderAPI.GET("", handler.ListOrders)
	orderAPI.GET("/:id", handler.GetOrder)
	orderAPI.PUT("/:id/status", handler.UpdateOrderStatus)
	orderAPI.PUT("/:id/pay", handler.MarkOrderPaid)
	orderAPI.DELETE("/:id", handler.DeleteOrder)

	couponAPI := e.Group("/api/coupons", mid.AuthMiddleware, mid.RequirePermission("coupons"))
	couponAPI.GET("", handler.ListCoupons)
	couponAPI.GET("/:id", handler.GetCoupon)
	couponAPI.POST("", handler.CreateCoupon)
	couponAPI.PUT("/:id", handler.UpdateCoupon)
	couponAPI.DELETE("/:id", handler.DeleteCoupon)

	bannerAPI := e.Group("/api/banners", mid.AuthMiddleware, mid.RequirePermission("banners"))
	bannerAPI.GET("", handler.ListBanners)
	bannerAPI.GET("/:id", handler.GetBanner)
	bannerAPI.POST("", handler.CreateBanner)
	bannerAPI.PUT("/:id", handler.UpdateBanner)
	bannerAPI.DELETE("/:id", handler.DeleteBanner)

	uploadAPI := e.Group("/api/upload", mid.AuthMiddleware)
	uploadAPI.POST("/image", handler.UploadImage)
	uploadAPI.POST("/images", handler.UploadImages)
	uploadAPI.DELETE("/image", handler.DeleteImage)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
