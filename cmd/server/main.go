package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bookstore/internal/auth"
	"bookstore/internal/cache"
	"bookstore/internal/config"
	"bookstore/internal/db"
	"bookstore/internal/handler"
	"bookstore/internal/model"
	"bookstore/internal/repository"
	"bookstore/internal/router"
	"bookstore/internal/seed"
	"bookstore/internal/service"
)

// @title Online Bookstore API
// @version 1.0
// @description Bookstore API with catalog browsing, orders and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Book{},
		&model.Order{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	catalogService := service.NewCatalogService(bookRepo, categoryRepo, cacheClient)
	orderService := service.NewOrderService(bookRepo, orderRepo, cacheClient)

	// Load sample data on first boot against an empty database.
	seeder := seed.New(userRepo, categoryRepo, bookRepo)
	if cfg.SeedOnBoot {
		applied, err := seeder.Apply(context.Background())
		if err != nil {
			log.Fatalf("seed sample data: %v", err)
		}
		if applied {
			log.Println("sample data loaded")
		}
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	seedHandler := handler.NewSeedHandler(seeder)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		userHandler,
		bookHandler,
		orderHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
