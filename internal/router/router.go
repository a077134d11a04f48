package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/visaflow/backend/internal/handlers"
	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	}))
}

// SetupRoutes runs migrations, wires repositories into handlers and
// registers every route
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, log *zap.Logger) error {
	if err := pgdb.AutoMigrate(
		&models.Employee{},
		&models.Notification{},
		&models.SweepRun{},
	); err != nil {
		return err
	}

	// Liveness - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	employeeRepo := repositories.NewPostgresEmployeeRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	sweepRepo := repositories.NewPostgresSweepRepository(pgdb)
	importLogRepo := repositories.NewMongoImportLogRepository(mgClient.Database("visaflow"))

	sweeper := handlers.NewSweeper(employeeRepo, notificationRepo, sweepRepo, log)

	api := e.Group("/api/v1")

	employeeHandler := handlers.NewEmployeeHandler(employeeRepo, sweeper, log)
	employeeHandler.RegisterEmployeeRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, sweepRepo, sweeper)
	notificationHandler.RegisterNotificationRoutes(api)

	dashboardHandler := handlers.NewDashboardHandler(employeeRepo)
	dashboardHandler.RegisterDashboardRoutes(api)

	importHandler := handlers.NewImportHandler(employeeRepo, importLogRepo, sweeper, log)
	importHandler.RegisterImportRoutes(api)

	dataHandler := handlers.NewDataHandler(employeeRepo, notificationRepo, sweeper, log)
	dataHandler.RegisterDataRoutes(api)

	log.Info("all routes configured")
	return nil
}
