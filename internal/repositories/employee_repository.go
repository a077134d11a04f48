package repositories

import (
	"errors"

	"github.com/visaflow/backend/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateEmployeeCode signals that a create would reuse an external
// employee code that already belongs to another record.
var ErrDuplicateEmployeeCode = errors.New("duplicate employee code")

// EmployeeRepository defines the interface for employee record operations.
// Records are stored with raw dates only; the derived status is computed by
// callers on read.
type EmployeeRepository interface {
	CreateEmployee(employee *models.Employee) error
	GetEmployeeByID(id string) (*models.Employee, error)
	GetEmployees() ([]models.Employee, error)
	UpdateEmployee(employee *models.Employee) error
	DeleteEmployee(id string) error
	ReplaceAllEmployees(employees []models.Employee) error
	DeleteAllEmployees() error
}

// PostgresEmployeeRepository implements EmployeeRepository for PostgreSQL
type PostgresEmployeeRepository struct {
	db *gorm.DB
}

// NewPostgresEmployeeRepository creates a new PostgresEmployeeRepository
func NewPostgresEmployeeRepository(db *gorm.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

// CreateEmployee creates a new employee record. The employee code check is a
// plain lookup: the store is single-writer, so check-then-insert is enough.
func (r *PostgresEmployeeRepository) CreateEmployee(employee *models.Employee) error {
	if employee.EmployeeCode != "" {
		var count int64
		if err := r.db.Model(&models.Employee{}).
			Where("employee_code = ?", employee.EmployeeCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmployeeCode
		}
	}
	return r.db.Create(employee).Error
}

// GetEmployeeByID retrieves an employee by ID
func (r *PostgresEmployeeRepository) GetEmployeeByID(id string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetEmployees retrieves all employees, soonest visa expiry first. ISO date
// strings sort correctly as text; records with no visa date go last.
func (r *PostgresEmployeeRepository) GetEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.Order("CASE WHEN visa_expiry_date = '' THEN 1 ELSE 0 END, visa_expiry_date").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// UpdateEmployee updates an existing employee record
func (r *PostgresEmployeeRepository) UpdateEmployee(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// DeleteEmployee deletes an employee by ID. Notification history is NOT
// cascaded; alerts reference employees weakly.
func (r *PostgresEmployeeRepository) DeleteEmployee(id string) error {
	result := r.db.Delete(&models.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceAllEmployees swaps the whole collection for a restored backup.
func (r *PostgresEmployeeRepository) ReplaceAllEmployees(employees []models.Employee) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Employee{}).Error; err != nil {
			return err
		}
		if len(employees) == 0 {
			return nil
		}
		return tx.Create(&employees).Error
	})
}

// DeleteAllEmployees wipes the employee collection
func (r *PostgresEmployeeRepository) DeleteAllEmployees() error {
	return r.db.Where("1 = 1").Delete(&models.Employee{}).Error
}
