package handlers

import (
	"time"

	"go.uber.org/zap"

	"github.com/visaflow/backend/internal/alerts"
	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/repositories"
)

// Sweeper runs the notification check: load employees and alert history,
// reconcile, persist whatever is new. It is invoked synchronously after
// every employee write and on demand via the check endpoint; reconciliation
// is idempotent, so overlapping triggers only cost a query.
type Sweeper struct {
	employeeRepo     repositories.EmployeeRepository
	notificationRepo repositories.NotificationRepository
	sweepRepo        repositories.SweepRepository
	log              *zap.Logger
}

func NewSweeper(
	employeeRepo repositories.EmployeeRepository,
	notificationRepo repositories.NotificationRepository,
	sweepRepo repositories.SweepRepository,
	log *zap.Logger,
) *Sweeper {
	return &Sweeper{
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
		sweepRepo:        sweepRepo,
		log:              log,
	}
}

// Run executes one sweep and returns the newly created notifications.
func (s *Sweeper) Run() ([]models.Notification, error) {
	employees, err := s.employeeRepo.GetEmployees()
	if err != nil {
		return nil, err
	}

	existing, err := s.notificationRepo.GetNotifications()
	if err != nil {
		// A broken history must not block alerting; reconcile against an
		// empty history instead. Worst case is a re-alert, not a lost one.
		s.log.Warn("notification history unavailable, sweeping against empty history", zap.Error(err))
		existing = nil
	}

	now := time.Now()
	created := alerts.Reconcile(employees, existing, now)
	if len(created) > 0 {
		if err := s.notificationRepo.CreateNotifications(created); err != nil {
			return nil, err
		}
	}

	if err := s.sweepRepo.RecordSweep(&models.SweepRun{RanAt: now, Created: len(created)}); err != nil {
		s.log.Warn("failed to record sweep run", zap.Error(err))
	}

	s.log.Info("notification sweep completed",
		zap.Int("employees", len(employees)),
		zap.Int("created", len(created)))
	return created, nil
}
