package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/config"
	"github.com/shlee-dev/veloura-backend/internal/app/controller"
	"github.com/shlee-dev/veloura-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	adminController      *controller.AdminController
	homeController       *controller.HomeController
	productController    *controller.ProductController
	catalogController    *controller.CatalogController
	cartController       *controller.CartController
	orderController      *controller.OrderController
	addressController    *controller.AddressController
	contentController    *controller.ContentController
	blogController       *controller.BlogController
	subscriberController *controller.SubscriberController
	uploadController     *controller.UploadController
	authMiddleware       *middleware.AuthMiddleware
	adminMiddleware      *middleware.AdminMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	adminController *controller.AdminController,
	homeController *controller.HomeController,
	productController *controller.ProductController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	addressController *controller.AddressController,
	contentController *controller.ContentController,
	blogController *controller.BlogController,
	subscriberController *controller.SubscriberController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		adminController:      adminController,
		homeController:       homeController,
		productController:    productController,
		catalogController:    catalogController,
		cartController:       cartController,
		orderController:      orderController,
		addressController:    addressController,
		contentController:    contentController,
		blogController:       blogController,
		subscriberController: subscriberController,
		uploadController:     uploadController,
		authMiddleware:       authMiddleware,
		adminMiddleware:      adminMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "VELOURA API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Storefront reads, no auth
		v1.GET("/home", r.homeController.GetHome)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.List)
			products.GET("/:slug", r.productController.GetBySlug)
		}

		collections := v1.Group("/collections")
		{
			collections.GET("", r.catalogController.ListCollections)
			collections.GET("/:slug", r.catalogController.GetCollection)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.catalogController.ListCategories)
			categories.GET("/:slug", r.catalogController.GetCategory)
		}

		v1.GET("/content", r.contentController.ListBlocks)
		v1.GET("/content/:key", r.contentController.GetBlock)
		v1.GET("/grid", r.contentController.ListGridItems)

		blogs := v1.Group("/blogs")
		{
			blogs.GET("", r.blogController.List)
			blogs.GET("/:slug", r.blogController.GetBySlug)
		}

		v1.POST("/subscribers", r.subscriberController.Subscribe)

		// Customer routes, JWT required
		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.POST("/merge", r.cartController.Merge)
			cart.PUT("/:id", r.cartController.UpdateItem)
			cart.PATCH("/:id", r.cartController.AdjustItem)
			cart.DELETE("/:id", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.Clear)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.PlaceOrder)
			orders.GET("", r.orderController.ListMine)
			orders.GET("/:id", r.orderController.GetMine)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.List)
			addresses.POST("", r.addressController.Create)
			addresses.PUT("/:id", r.addressController.Update)
			addresses.DELETE("/:id", r.addressController.Delete)
			addresses.PUT("/:id/default", r.addressController.SetDefault)
		}

		// Admin CMS, session cookie required past login
		admin := v1.Group("/admin")
		{
			admin.POST("/login", r.adminController.Login)

			gated := admin.Group("")
			gated.Use(r.adminMiddleware.Require())
			{
				gated.POST("/logout", r.adminController.Logout)
				gated.GET("/session", r.adminController.Session)
				gated.GET("/events", r.adminController.Events)

				gated.POST("/products", r.productController.Create)
				gated.PUT("/products/:id", r.productController.Update)
				gated.DELETE("/products/:id", r.productController.Delete)
				gated.POST("/products/:id/variants", r.productController.AddVariant)
				gated.PUT("/products/:id/variants/:variantId", r.productController.UpdateVariant)
				gated.DELETE("/products/:id/variants/:variantId", r.productController.DeleteVariant)

				gated.POST("/collections", r.catalogController.CreateCollection)
				gated.PUT("/collections/:id", r.catalogController.UpdateCollection)
				gated.DELETE("/collections/:id", r.catalogController.DeleteCollection)
				gated.POST("/categories", r.catalogController.CreateCategory)
				gated.PUT("/categories/:id", r.catalogController.UpdateCategory)
				gated.DELETE("/categories/:id", r.catalogController.DeleteCategory)

				gated.PUT("/content", r.contentController.UpsertBlock)
				gated.DELETE("/content/:key", r.contentController.DeleteBlock)
				gated.POST("/grid", r.contentController.CreateGridItem)
				gated.PUT("/grid/:id", r.contentController.UpdateGridItem)
				gated.DELETE("/grid/:id", r.contentController.DeleteGridItem)

				gated.GET("/blogs", r.blogController.ListAll)
				gated.POST("/blogs", r.blogController.Create)
				gated.PUT("/blogs/:id", r.blogController.Update)
				gated.DELETE("/blogs/:id", r.blogController.Delete)

				gated.GET("/orders", r.orderController.ListAll)
				gated.GET("/orders/export", r.orderController.Export)
				gated.PUT("/orders/:id/status", r.orderController.UpdateStatus)

				gated.GET("/subscribers", r.subscriberController.List)
				gated.GET("/subscribers/export", r.subscriberController.Export)
				gated.DELETE("/subscribers/:id", r.subscriberController.Delete)

				gated.POST("/uploads/presign", r.uploadController.Presign)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
