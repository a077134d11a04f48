package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/repositories"
	"github.com/visaflow/backend/internal/status"
)

// EmployeeHandler handles HTTP requests related to employee records
type EmployeeHandler struct {
	employeeRepository repositories.EmployeeRepository
	sweeper            *Sweeper
	log                *zap.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeRepo repositories.EmployeeRepository, sweeper *Sweeper, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeRepository: employeeRepo,
		sweeper:            sweeper,
		log:                log,
	}
}

// RegisterEmployeeRoutes registers employee routes
func (h *EmployeeHandler) RegisterEmployeeRoutes(g *echo.Group) {
	g.GET("/employees", h.GetEmployees)
	g.POST("/employees", h.CreateEmployee)
	g.GET("/employees/:id", h.GetEmployee)
	g.PUT("/employees/:id", h.UpdateEmployee)
	g.DELETE("/employees/:id", h.DeleteEmployee)
}

// withStatus fills in the derived status against the current date. Status is
// a view over the stored dates, never stored truth.
func withStatus(e models.Employee, now time.Time) models.Employee {
	e.Status = string(status.ForEmployee(e, now))
	return e
}

// GetEmployees returns every employee with freshly derived status,
// soonest visa expiry first.
func (h *EmployeeHandler) GetEmployees(c echo.Context) error {
	employees, err := h.employeeRepository.GetEmployees()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	for i := range employees {
		employees[i] = withStatus(employees[i], now)
	}
	return c.JSON(http.StatusOK, employees)
}

// GetEmployee returns a single employee with derived status
func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	employee, err := h.employeeRepository.GetEmployeeByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, withStatus(*employee, time.Now()))
}

// CreateEmployee creates an employee record and runs the notification check
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	var req models.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	now := time.Now()
	employee := models.Employee{
		ID:                   uuid.NewString(),
		EmployeeCode:         req.EmployeeCode,
		FullName:             req.FullName,
		PassportNumber:       req.PassportNumber,
		VisaType:             req.VisaType,
		VisaIssueDate:        req.VisaIssueDate,
		VisaExpiryDate:       req.VisaExpiryDate,
		HealthCardExpiryDate: req.HealthCardExpiryDate,
		LabourCardExpiryDate: req.LabourCardExpiryDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := h.employeeRepository.CreateEmployee(&employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmployeeCode) {
			return echo.NewHTTPError(http.StatusConflict, "Employee code already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The record is durable at this point; a sweep failure is logged, not
	// surfaced as a failed create.
	if _, err := h.sweeper.Run(); err != nil {
		h.log.Error("post-create notification sweep failed", zap.Error(err))
	}

	return c.JSON(http.StatusCreated, withStatus(employee, now))
}

// UpdateEmployee updates an employee record and runs the notification check
func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	employee, err := h.employeeRepository.GetEmployeeByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req models.UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// A nil field was not sent; a non-nil empty string clears the value,
	// except the name, which stays non-empty.
	if req.FullName != nil && *req.FullName != "" {
		employee.FullName = *req.FullName
	}
	if req.EmployeeCode != nil {
		employee.EmployeeCode = *req.EmployeeCode
	}
	if req.PassportNumber != nil {
		employee.PassportNumber = *req.PassportNumber
	}
	if req.VisaType != nil {
		employee.VisaType = *req.VisaType
	}
	if req.VisaIssueDate != nil {
		employee.VisaIssueDate = *req.VisaIssueDate
	}
	if req.VisaExpiryDate != nil {
		employee.VisaExpiryDate = *req.VisaExpiryDate
	}
	if req.HealthCardExpiryDate != nil {
		employee.HealthCardExpiryDate = *req.HealthCardExpiryDate
	}
	if req.LabourCardExpiryDate != nil {
		employee.LabourCardExpiryDate = *req.LabourCardExpiryDate
	}
	employee.UpdatedAt = time.Now()

	if err := h.employeeRepository.UpdateEmployee(employee); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.sweeper.Run(); err != nil {
		h.log.Error("post-update notification sweep failed", zap.Error(err))
	}

	return c.JSON(http.StatusOK, withStatus(*employee, time.Now()))
}

// DeleteEmployee deletes an employee record. Alert history referencing the
// employee is intentionally left in place.
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	if err := h.employeeRepository.DeleteEmployee(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
