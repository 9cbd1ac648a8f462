package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/config"
	"github.com/ikkim/meesho-backend/internal/app/controller"
	"github.com/ikkim/meesho-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	searchController   *controller.SearchController
	productController  *controller.ProductController
	categoryController *controller.CategoryController
	authController     *controller.AuthController
	cartController     *controller.CartController
	stylistController  *controller.StylistController
	adminController    *controller.AdminController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	searchController *controller.SearchController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	authController *controller.AuthController,
	cartController *controller.CartController,
	stylistController *controller.StylistController,
	adminController *controller.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		searchController:   searchController,
		productController:  productController,
		categoryController: categoryController,
		authController:     authController,
		cartController:     cartController,
		stylistController:  stylistController,
		adminController:    adminController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Meesho API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticate := r.authMiddleware.Authenticate()
	requireAdmin := r.authMiddleware.RequireAdmin()

	api := router.Group("/api")
	{
		api.POST("/search", r.searchController.Search)

		products := api.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.POST("", authenticate, requireAdmin, r.productController.CreateProduct)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.POST("", authenticate, requireAdmin, r.categoryController.CreateCategory)
		}

		users := api.Group("/users")
		{
			users.POST("", r.authController.Register)
			users.POST("/login", r.authController.Login)
			users.GET("/profile", authenticate, r.authController.GetProfile)
			users.PUT("/profile", authenticate, r.authController.UpdateProfile)
			users.GET("", authenticate, requireAdmin, r.authController.ListUsers)
		}

		cart := api.Group("/cart", authenticate)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddItem)
			cart.DELETE("", r.cartController.ClearCart)
			cart.PUT("/:productId", r.cartController.UpdateItem)
			cart.DELETE("/:productId", r.cartController.RemoveItem)
		}

		stylist := api.Group("/stylist")
		{
			stylist.POST("/chat", r.stylistController.Chat)
			stylist.GET("/outfits", r.stylistController.Outfits)
		}

		admin := api.Group("/admin", authenticate, requireAdmin)
		{
			admin.POST("/products/import", r.adminController.ImportProducts)
			admin.GET("/products/export", r.adminController.ExportProducts)
			admin.POST("/uploads/presign", r.adminController.PresignUpload)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
