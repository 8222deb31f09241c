package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shlee-dev/veloura-backend/config"
	"github.com/shlee-dev/veloura-backend/internal/app/controller"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	"github.com/shlee-dev/veloura-backend/internal/cache"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
	"github.com/shlee-dev/veloura-backend/internal/router"
	"github.com/shlee-dev/veloura-backend/internal/scheduler"
	"github.com/shlee-dev/veloura-backend/internal/storage"
	"github.com/shlee-dev/veloura-backend/internal/ws"
	"github.com/shlee-dev/veloura-backend/pkg/logger"
	"github.com/shlee-dev/veloura-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting VELOURA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis, backing admin sessions and the home cache
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	sessionStore := redis.NewSessionStore(redis.GetClient())
	homeCache := cache.NewHomeCache(redis.GetClient())

	// Admin live event feed
	hub := ws.NewHub(cfg.CORS.AllowedOrigins)
	defer hub.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	collectionRepo := repository.NewCollectionRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	contentRepo := repository.NewContentRepository(db.GetDB())
	gridRepo := repository.NewGridRepository(db.GetDB())
	blogRepo := repository.NewBlogRepository(db.GetDB())
	subscriberRepo := repository.NewSubscriberRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	adminService, err := service.NewAdminService(sessionStore, cfg.Admin)
	if err != nil {
		logger.Fatal("Failed to initialize admin service", err)
	}
	productService := service.NewProductService(db.GetDB(), productRepo, variantRepo, homeCache)
	catalogService := service.NewCatalogService(collectionRepo, categoryRepo, homeCache)
	cartService := service.NewCartService(cartRepo, productRepo, variantRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, cartRepo, addressRepo, hub)
	addressService := service.NewAddressService(addressRepo)
	contentService := service.NewContentService(contentRepo, gridRepo, homeCache)
	blogService := service.NewBlogService(blogRepo)
	subscriberService := service.NewSubscriberService(subscriberRepo)

	// Media uploads go straight to S3 with pre-signed URLs
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	secureCookie := cfg.Server.Environment == "production"
	authController := controller.NewAuthController(authService)
	adminController := controller.NewAdminController(adminService, hub, cfg.Admin.CookieName, secureCookie)
	homeController := controller.NewHomeController(productService, catalogService, contentService, homeCache)
	productController := controller.NewProductController(productService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	addressController := controller.NewAddressController(addressService)
	contentController := controller.NewContentController(contentService)
	blogController := controller.NewBlogController(blogService)
	subscriberController := controller.NewSubscriberController(subscriberService)
	uploadController := controller.NewUploadController(s3Storage)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	adminMiddleware := middleware.NewAdminMiddleware(adminService, cfg.Admin.CookieName)

	// Aggregate stock drift repair
	reconciler := scheduler.NewStockReconciler(productRepo)
	if err := reconciler.Start(); err != nil {
		logger.Fatal("Failed to start stock reconciler", err)
	}
	defer reconciler.Stop()

	r := router.NewRouter(
		authController,
		adminController,
		homeController,
		productController,
		catalogController,
		cartController,
		orderController,
		addressController,
		contentController,
		blogController,
		subscriberController,
		uploadController,
		authMiddleware,
		adminMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
