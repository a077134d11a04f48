package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/repositories"
	"github.com/visaflow/backend/internal/seed"
)

// DataHandler handles backup export/restore and the full data wipe
type DataHandler struct {
	employeeRepository     repositories.EmployeeRepository
	notificationRepository repositories.NotificationRepository
	sweeper                *Sweeper
	log                    *zap.Logger
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(employeeRepo repositories.EmployeeRepository, notifRepo repositories.NotificationRepository, sweeper *Sweeper, log *zap.Logger) *DataHandler {
	return &DataHandler{
		employeeRepository:     employeeRepo,
		notificationRepository: notifRepo,
		sweeper:                sweeper,
		log:                    log,
	}
}

// RegisterDataRoutes registers backup and data admin routes
func (h *DataHandler) RegisterDataRoutes(g *echo.Group) {
	g.GET("/backup", h.ExportBackup)
	g.POST("/backup/restore", h.RestoreBackup)
	g.DELETE("/data", h.WipeData)
}

// Backup is the export/restore payload: raw records only, no derived status.
type Backup struct {
	Employees     []models.Employee     `json:"employees"`
	Notifications []models.Notification `json:"notifications"`
}

// ExportBackup dumps both collections as stored
func (h *DataHandler) ExportBackup(c echo.Context) error {
	employees, err := h.employeeRepository.GetEmployees()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	notifications, err := h.notificationRepository.GetNotifications()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, Backup{Employees: employees, Notifications: notifications})
}

// RestoreBackup replaces both collections with a previously exported backup
func (h *DataHandler) RestoreBackup(c echo.Context) error {
	var backup Backup
	if err := c.Bind(&backup); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.employeeRepository.ReplaceAllEmployees(backup.Employees); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.notificationRepository.ReplaceAllNotifications(backup.Notifications); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.log.Info("backup restored",
		zap.Int("employees", len(backup.Employees)),
		zap.Int("notifications", len(backup.Notifications)))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// WipeData clears both collections. This is the only path that deletes
// notifications. ?seed=true repopulates the demo dataset afterwards.
func (h *DataHandler) WipeData(c echo.Context) error {
	if err := h.notificationRepository.DeleteAllNotifications(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.employeeRepository.DeleteAllEmployees(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.log.Info("all data wiped")

	if c.QueryParam("seed") == "true" {
		if err := seed.Demo(h.employeeRepository, h.log); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if _, err := h.sweeper.Run(); err != nil {
			h.log.Error("post-seed notification sweep failed", zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
