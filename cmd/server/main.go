package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/visaflow/backend/internal/handlers"
	"github.com/visaflow/backend/internal/repositories"
	"github.com/visaflow/backend/internal/router"
	"github.com/visaflow/backend/internal/seed"
	"github.com/visaflow/backend/pkg/config"
	"github.com/visaflow/backend/pkg/logger"
	"github.com/visaflow/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware, routes and dependencies
	router.SetupMiddleware(e, zlog)
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, zlog); err != nil {
		zlog.Fatal("failed to set up routes", zap.Error(err))
	}

	if cfg.SeedDemoData {
		employeeRepo := repositories.NewPostgresEmployeeRepository(db.Postgres)
		notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
		sweepRepo := repositories.NewPostgresSweepRepository(db.Postgres)
		sweeper := handlers.NewSweeper(employeeRepo, notificationRepo, sweepRepo, zlog)
		if err := seed.DemoIfEmptyAndSweep(employeeRepo, sweeper, zlog); err != nil {
			zlog.Warn("demo data seeding failed", zap.Error(err))
		}
	}

	// Start server
	zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
