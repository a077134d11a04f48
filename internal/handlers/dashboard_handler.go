package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visaflow/backend/internal/repositories"
	"github.com/visaflow/backend/internal/status"
)

// DashboardHandler serves aggregate stats for the overview page
type DashboardHandler struct {
	employeeRepository repositories.EmployeeRepository
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(employeeRepo repositories.EmployeeRepository) *DashboardHandler {
	return &DashboardHandler{employeeRepository: employeeRepo}
}

// RegisterDashboardRoutes registers dashboard routes
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/dashboard/stats", h.GetStats)
}

// GetStats derives the per-tier employee counts at request time. Documents
// with missing or unreadable dates are reported separately so absent data
// cannot hide behind a green VALID count.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	employees, err := h.employeeRepository.GetEmployees()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	distribution := map[string]int{
		string(status.Valid):    0,
		string(status.Unknown):  0,
		string(status.Warning):  0,
		string(status.Critical): 0,
		string(status.Expired):  0,
	}
	unknownDocuments := 0

	for _, e := range employees {
		distribution[string(status.ForEmployee(e, now))]++

		for _, date := range []string{e.VisaExpiryDate, e.HealthCardExpiryDate, e.LabourCardExpiryDate} {
			if status.Classify(date, now) == status.Unknown {
				unknownDocuments++
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"totalEmployees":   len(employees),
			"expiring30Days":   distribution[string(status.Warning)],
			"expiring7Days":    distribution[string(status.Critical)],
			"expired":          distribution[string(status.Expired)],
			"unknownDocuments": unknownDocuments,
			"distribution":     distribution,
		},
	})
}
