// Package status derives document expiry tiers. Everything here is a pure
// function of the stored dates and the supplied "today"; the derived status
// is a view and is never persisted.
package status

import (
	"time"

	"github.com/visaflow/backend/internal/models"
)

// Tier is the severity of a single document's proximity to expiry.
type Tier string

const (
	Valid    Tier = "VALID"
	Unknown  Tier = "UNKNOWN"  // missing or unparseable date
	Warning  Tier = "WARNING"  // <= 30 days remaining
	Critical Tier = "CRITICAL" // <= 7 days remaining
	Expired  Tier = "EXPIRED"  // already past
)

// DateLayout is the canonical calendar-date form used everywhere in storage.
const DateLayout = "2006-01-02"

var severityWeight = map[Tier]int{
	Valid:    0,
	Unknown:  1,
	Warning:  2,
	Critical: 3,
	Expired:  4,
}

// DaysUntil returns the whole-calendar-day difference between expiry and
// today, ignoring the time-of-day of both.
func DaysUntil(expiry, today time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}

// Classify maps an expiry date (YYYY-MM-DD, possibly empty) to a tier.
// A document expiring today still has 0 days remaining and is CRITICAL,
// not EXPIRED; exactly 7 days out is CRITICAL and exactly 30 is WARNING.
func Classify(expiryDate string, today time.Time) Tier {
	if expiryDate == "" {
		return Unknown
	}
	expiry, err := time.Parse(DateLayout, expiryDate)
	if err != nil {
		return Unknown
	}

	days := DaysUntil(expiry, today)
	switch {
	case days < 0:
		return Expired
	case days <= 7:
		return Critical
	case days <= 30:
		return Warning
	default:
		return Valid
	}
}

// Aggregate folds any number of tiers into the worst one. No inputs means
// there is nothing to worry about.
func Aggregate(tiers ...Tier) Tier {
	worst := Valid
	for _, t := range tiers {
		if severityWeight[t] > severityWeight[worst] {
			worst = t
		}
	}
	return worst
}

// ForEmployee derives the aggregate status across the three tracked
// documents at the given reference time.
func ForEmployee(e models.Employee, today time.Time) Tier {
	return Aggregate(
		Classify(e.VisaExpiryDate, today),
		Classify(e.HealthCardExpiryDate, today),
		Classify(e.LabourCardExpiryDate, today),
	)
}
