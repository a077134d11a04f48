package models

import "time"

// Employee is the persisted employee record (PostgreSQL).
// Dates are calendar dates stored as YYYY-MM-DD strings; Status is derived
// from them on every read and is never written to the database.
type Employee struct {
	ID                   string    `json:"id" gorm:"primaryKey;size:36"`
	EmployeeCode         string    `json:"employeeCode,omitempty" gorm:"size:40;index"`
	FullName             string    `json:"fullName" gorm:"size:100"`
	PassportNumber       string    `json:"passportNumber,omitempty" gorm:"size:40"`
	VisaType             string    `json:"visaType" gorm:"size:40"`
	VisaIssueDate        string    `json:"visaIssueDate" gorm:"size:10"`
	VisaExpiryDate       string    `json:"visaExpiryDate" gorm:"size:10;index"`
	HealthCardExpiryDate string    `json:"healthCardExpiryDate" gorm:"size:10"`
	LabourCardExpiryDate string    `json:"labourCardExpiryDate" gorm:"size:10"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
	Status               string    `json:"status" gorm:"-"`
}

type CreateEmployeeRequest struct {
	FullName             string `json:"fullName" validate:"required,min=2,max=100"`
	EmployeeCode         string `json:"employeeCode" validate:"omitempty,max=40"`
	PassportNumber       string `json:"passportNumber" validate:"omitempty,max=40"`
	VisaType             string `json:"visaType" validate:"omitempty,max=40"`
	VisaIssueDate        string `json:"visaIssueDate" validate:"omitempty,datetime=2006-01-02"`
	VisaExpiryDate       string `json:"visaExpiryDate" validate:"omitempty,datetime=2006-01-02"`
	HealthCardExpiryDate string `json:"healthCardExpiryDate" validate:"omitempty,datetime=2006-01-02"`
	LabourCardExpiryDate string `json:"labourCardExpiryDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest uses pointer fields so an absent field is left
// untouched while an explicit empty string clears the stored value.
type UpdateEmployeeRequest struct {
	FullName             *string `json:"fullName" validate:"omitempty,min=2,max=100"`
	EmployeeCode         *string `json:"employeeCode" validate:"omitempty,max=40"`
	PassportNumber       *string `json:"passportNumber" validate:"omitempty,max=40"`
	VisaType             *string `json:"visaType" validate:"omitempty,max=40"`
	VisaIssueDate        *string `json:"visaIssueDate" validate:"omitempty,datetime=2006-01-02"`
	VisaExpiryDate       *string `json:"visaExpiryDate" validate:"omitempty,datetime=2006-01-02"`
	HealthCardExpiryDate *string `json:"healthCardExpiryDate" validate:"omitempty,datetime=2006-01-02"`
	LabourCardExpiryDate *string `json:"labourCardExpiryDate" validate:"omitempty,datetime=2006-01-02"`
}
