// Package alerts turns document tiers into de-duplicated notifications.
// Reconcile is pure over the snapshots it is given; persisting the result is
// the caller's job.
package alerts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/status"
)

// Tracked document types, in the order they are checked per employee.
const (
	DocVisa       = "Visa"
	DocHealthCard = "Health Card"
	DocLabourCard = "Labour Card"
)

type documentCheck struct {
	docType string
	date    string
}

// dedupKey identifies an alert lineage: same employee, same document, same
// tier, same expiry date. Message wording is deliberately not part of the key.
func dedupKey(employeeID, docType, severity, expiryDate string) string {
	return employeeID + "|" + docType + "|" + severity + "|" + expiryDate
}

func severityFor(t status.Tier) string {
	switch t {
	case status.Expired:
		return models.SeverityExpired
	case status.Critical:
		return models.SeverityCritical
	default:
		return models.SeverityWarning
	}
}

func messageFor(t status.Tier, docType, name, date string) string {
	switch t {
	case status.Expired:
		return fmt.Sprintf("%s for %s has EXPIRED on %s.", docType, name, date)
	case status.Critical:
		return fmt.Sprintf("%s for %s expires in < 7 days (%s).", docType, name, date)
	default:
		return fmt.Sprintf("%s for %s expires in < 30 days (%s).", docType, name, date)
	}
}

// Reconcile compares every employee's current document tiers against the
// existing notification history and returns only the alerts that are new.
//
// An alert is suppressed while an UNREAD notification for the same lineage
// exists. Read notifications never suppress: once a human acknowledges an
// alert, the same condition raises a fresh one on the next run. Running
// Reconcile twice with no intervening change therefore yields an empty
// second result.
func Reconcile(employees []models.Employee, existing []models.Notification, now time.Time) []models.Notification {
	unread := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		if !n.IsRead {
			unread[dedupKey(n.EmployeeID, n.DocumentType, n.Severity, n.ExpiryDate)] = struct{}{}
		}
	}

	var created []models.Notification
	for _, emp := range employees {
		// A record with no identity cannot anchor an alert lineage; skip
		// it rather than abort the whole sweep.
		if emp.ID == "" {
			continue
		}

		checks := []documentCheck{
			{DocVisa, emp.VisaExpiryDate},
			{DocHealthCard, emp.HealthCardExpiryDate},
			{DocLabourCard, emp.LabourCardExpiryDate},
		}
		for _, chk := range checks {
			tier := status.Classify(chk.date, now)
			if tier == status.Valid || tier == status.Unknown {
				continue
			}

			severity := severityFor(tier)
			key := dedupKey(emp.ID, chk.docType, severity, chk.date)
			if _, seen := unread[key]; seen {
				continue
			}
			unread[key] = struct{}{}

			created = append(created, models.Notification{
				ID:           uuid.NewString(),
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				DocumentType: chk.docType,
				Severity:     severity,
				ExpiryDate:   chk.date,
				Message:      messageFor(tier, chk.docType, emp.FullName, chk.date),
				IsRead:       false,
				CreatedAt:    now,
			})
		}
	}
	return created
}
