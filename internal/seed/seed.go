// Package seed loads a small demo dataset so a fresh install has something
// to show on the dashboard.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/repositories"
)

// Sweeper runs a notification check; satisfied by the handlers sweeper.
type Sweeper interface {
	Run() ([]models.Notification, error)
}

// days returns today+offset as a stored calendar date.
func days(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

// Demo inserts the demo employees: one fully valid, one in warning, one in
// critical and one with an expired health card.
func Demo(employeeRepo repositories.EmployeeRepository, log *zap.Logger) error {
	now := time.Now()
	demo := []models.Employee{
		{
			EmployeeCode:         "EMP001",
			FullName:             "Alice Johnson",
			PassportNumber:       "A12345678",
			VisaType:             "Employment",
			VisaIssueDate:        days(-300),
			VisaExpiryDate:       days(120),
			HealthCardExpiryDate: days(100),
			LabourCardExpiryDate: days(90),
		},
		{
			EmployeeCode:         "EMP002",
			FullName:             "Bob Smith",
			PassportNumber:       "B98765432",
			VisaType:             "Business",
			VisaIssueDate:        days(-350),
			VisaExpiryDate:       days(25),
			HealthCardExpiryDate: days(60),
			LabourCardExpiryDate: days(60),
		},
		{
			EmployeeCode:         "EMP003",
			FullName:             "Charlie Davis",
			PassportNumber:       "C11223344",
			VisaType:             "Tourist",
			VisaIssueDate:        days(-60),
			VisaExpiryDate:       days(5),
			HealthCardExpiryDate: days(40),
			LabourCardExpiryDate: days(40),
		},
		{
			EmployeeCode:         "EMP004",
			FullName:             "Diana Evans",
			PassportNumber:       "D55667788",
			VisaType:             "Employment",
			VisaIssueDate:        days(-400),
			VisaExpiryDate:       days(60),
			HealthCardExpiryDate: days(-2),
			LabourCardExpiryDate: days(60),
		},
	}

	for i := range demo {
		demo[i].ID = uuid.NewString()
		demo[i].CreatedAt = now
		demo[i].UpdatedAt = now
		if err := employeeRepo.CreateEmployee(&demo[i]); err != nil {
			return err
		}
	}
	log.Info("demo dataset seeded", zap.Int("employees", len(demo)))
	return nil
}

// DemoIfEmpty seeds only when the employee collection is empty.
func DemoIfEmpty(employeeRepo repositories.EmployeeRepository, log *zap.Logger) error {
	employees, err := employeeRepo.GetEmployees()
	if err != nil {
		return err
	}
	if len(employees) > 0 {
		return nil
	}
	return Demo(employeeRepo, log)
}

// DemoIfEmptyAndSweep seeds an empty store and runs a notification check so
// a fresh install starts with its alerts already raised.
func DemoIfEmptyAndSweep(employeeRepo repositories.EmployeeRepository, sweeper Sweeper, log *zap.Logger) error {
	if err := DemoIfEmpty(employeeRepo, log); err != nil {
		return err
	}
	if _, err := sweeper.Run(); err != nil {
		return fmt.Errorf("initial notification sweep: %w", err)
	}
	return nil
}
