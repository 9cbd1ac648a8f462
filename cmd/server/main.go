package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/meesho-backend/config"
	"github.com/ikkim/meesho-backend/internal/app/controller"
	"github.com/ikkim/meesho-backend/internal/app/service"
	"github.com/ikkim/meesho-backend/internal/bootstrap"
	"github.com/ikkim/meesho-backend/internal/middleware"
	"github.com/ikkim/meesho-backend/internal/router"
	"github.com/ikkim/meesho-backend/internal/storage"
	"github.com/ikkim/meesho-backend/pkg/logger"
	"github.com/ikkim/meesho-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Meesho Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"db_driver":   cfg.Database.Driver,
		"log_level":   logLevel,
	})

	repos, err := bootstrap.OpenRepositories(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Redis is optional; a nil Cache disables caching in the services.
	var cache service.Cache
	if cfg.Redis.Enabled() {
		redisCache, err := redis.New(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache = redisCache
			defer redisCache.Close()
		}
	}

	s3Storage := storage.NewS3Storage(&cfg.S3)

	// Initialize services
	authService := service.NewAuthService(repos.Users, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	productService := service.NewProductService(repos.Products, cache)
	categoryService := service.NewCategoryService(repos.Categories, cache)
	searchService := service.NewSearchService(repos.Products)
	cartService := service.NewCartService(repos.Carts, repos.Products)
	stylistService := service.NewStylistService(searchService)
	uploadService := service.NewUploadService(s3Storage)

	// Setup router
	r := router.NewRouter(
		controller.NewSearchController(searchService),
		controller.NewProductController(productService),
		controller.NewCategoryController(categoryService),
		controller.NewAuthController(authService),
		controller.NewCartController(cartService),
		controller.NewStylistController(stylistService),
		controller.NewAdminController(productService, uploadService),
		middleware.NewAuthMiddleware(cfg.JWT.Secret),
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
