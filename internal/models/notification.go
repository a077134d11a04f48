package models

import "time"

// Notification severities (worst tier of the document that raised the alert).
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
	SeverityExpired  = "expired"
)

// Notification is an expiry alert (PostgreSQL). EmployeeID is a weak
// reference: deleting the employee keeps the alert history, and EmployeeName
// is snapshotted so the message stays readable after a delete or rename.
// Rows are append-only; only the IsRead flag is ever updated, and only a full
// data wipe removes them.
type Notification struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	EmployeeID   string    `json:"employeeId" gorm:"size:36;index"`
	EmployeeName string    `json:"employeeName" gorm:"size:100"`
	DocumentType string    `json:"documentType" gorm:"size:20;index"`
	Severity     string    `json:"severity" gorm:"size:10;index"`
	ExpiryDate   string    `json:"expiryDate" gorm:"size:10"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
}

// SweepRun records one run of the notification check, manual or triggered by
// an employee write.
type SweepRun struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	RanAt   time.Time `json:"ranAt" gorm:"index"`
	Created int       `json:"created"`
}
