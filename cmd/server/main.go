package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	_ "librario/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"librario/internal/cache"
	"librario/internal/config"
	"librario/internal/db"
	"librario/internal/handler"
	"librario/internal/model"
	"librario/internal/repository"
	"librario/internal/router"
	"librario/internal/service"
)

// @title Library Loan API
// @version 1.0
// @description Library management API with book catalog and loan registration.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Loan{},
			&model.User{},
			&model.Book{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Book{},
		&model.User{},
		&model.Loan{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	bookRepo := repository.NewBookRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	loanRepo := repository.NewLoanRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize services
	bookService := service.NewBookService(bookRepo, cacheClient)
	loanService := service.NewLoanService(txManager, bookRepo, userRepo, loanRepo, cacheClient)

	// Initialize handlers
	bookHandler := handler.NewBookHandler(bookService)
	loanHandler := handler.NewLoanHandler(loanService)

	// Register routes
	router.Register(e, cfg, bookHandler, loanHandler)

	if cfg.SwaggerHost != "" {
		swaggerURL := cfg.SwaggerHost
		if !strings.HasPrefix(swaggerURL, "http://") && !strings.HasPrefix(swaggerURL, "https://") {
			swaggerURL = "http://" + swaggerURL
		}
		log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerURL)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
