package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/visaflow/backend/internal/importer"
	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/repositories"
)

// ImportHandler handles spreadsheet uploads
type ImportHandler struct {
	employeeRepository repositories.EmployeeRepository
	importLogRepo      repositories.ImportLogRepository
	sweeper            *Sweeper
	log                *zap.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(employeeRepo repositories.EmployeeRepository, importLogRepo repositories.ImportLogRepository, sweeper *Sweeper, log *zap.Logger) *ImportHandler {
	return &ImportHandler{
		employeeRepository: employeeRepo,
		importLogRepo:      importLogRepo,
		sweeper:            sweeper,
		log:                log,
	}
}

// RegisterImportRoutes registers import routes
func (h *ImportHandler) RegisterImportRoutes(g *echo.Group) {
	g.POST("/import", h.ImportEmployees)
	g.GET("/import/history", h.GetImportHistory)
}

// ImportEmployees bulk-loads employees from an uploaded .xlsx file. Bad rows
// become entries in the errors list; a single broken row never aborts the
// batch. One notification sweep runs after the whole batch.
func (h *ImportHandler) ImportEmployees(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file upload")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	records, err := importer.ReadWorkbook(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to parse Excel file. Ensure it is not corrupted.")
	}

	rows, rowErrs := importer.Normalize(records)
	result := models.ImportResult{Errors: rowErrs}
	if result.Errors == nil {
		result.Errors = []models.ImportRowError{}
	}

	existing, err := h.employeeRepository.GetEmployees()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	seenCodes := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		if e.EmployeeCode != "" {
			seenCodes[e.EmployeeCode] = struct{}{}
		}
	}

	now := time.Now()
	for _, row := range rows {
		if err := c.Validate(&row.Request); err != nil {
			result.Errors = append(result.Errors, models.ImportRowError{Row: row.Line, Error: err.Error()})
			continue
		}
		if _, dup := seenCodes[row.Request.EmployeeCode]; dup {
			result.Errors = append(result.Errors, models.ImportRowError{
				Row:   row.Line,
				Error: fmt.Sprintf("Duplicate EMP ID: %s", row.Request.EmployeeCode),
			})
			continue
		}

		employee := models.Employee{
			ID:                   uuid.NewString(),
			EmployeeCode:         row.Request.EmployeeCode,
			FullName:             row.Request.FullName,
			PassportNumber:       row.Request.PassportNumber,
			VisaType:             row.Request.VisaType,
			VisaIssueDate:        row.Request.VisaIssueDate,
			VisaExpiryDate:       row.Request.VisaExpiryDate,
			HealthCardExpiryDate: row.Request.HealthCardExpiryDate,
			LabourCardExpiryDate: row.Request.LabourCardExpiryDate,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := h.employeeRepository.CreateEmployee(&employee); err != nil {
			if errors.Is(err, repositories.ErrDuplicateEmployeeCode) {
				result.Errors = append(result.Errors, models.ImportRowError{
					Row:   row.Line,
					Error: fmt.Sprintf("Duplicate EMP ID: %s", row.Request.EmployeeCode),
				})
				continue
			}
			result.Errors = append(result.Errors, models.ImportRowError{Row: row.Line, Error: err.Error()})
			continue
		}
		if employee.EmployeeCode != "" {
			seenCodes[employee.EmployeeCode] = struct{}{}
		}
		result.Inserted++
	}

	if result.Inserted > 0 {
		if _, err := h.sweeper.Run(); err != nil {
			h.log.Error("post-import notification sweep failed", zap.Error(err))
		}
	}

	if err := h.importLogRepo.CreateImportLog(&models.ImportLog{
		FileName:  fileHeader.Filename,
		Inserted:  result.Inserted,
		Updated:   result.Updated,
		Errors:    result.Errors,
		CreatedAt: now,
	}); err != nil {
		h.log.Warn("failed to persist import log", zap.Error(err))
	}

	h.log.Info("import batch processed",
		zap.String("file", fileHeader.Filename),
		zap.Int("inserted", result.Inserted),
		zap.Int("errors", len(result.Errors)))
	return c.JSON(http.StatusOK, result)
}

// GetImportHistory returns recent import batches
func (h *ImportHandler) GetImportHistory(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	logs, err := h.importLogRepo.GetImportLogs(limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"imports": logs}})
}
