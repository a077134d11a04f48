package handlers

import (
	"sort"

	"gorm.io/gorm"

	"github.com/visaflow/backend/internal/models"
	"github.com/visaflow/backend/internal/repositories"
)

// In-memory stand-ins for the repositories so handlers can be exercised
// without a live database.

type fakeEmployeeRepo struct {
	employees []models.Employee
	failList  error
}

var _ repositories.EmployeeRepository = (*fakeEmployeeRepo)(nil)

func (f *fakeEmployeeRepo) CreateEmployee(e *models.Employee) error {
	if e.EmployeeCode != "" {
		for _, existing := range f.employees {
			if existing.EmployeeCode == e.EmployeeCode {
				return repositories.ErrDuplicateEmployeeCode
			}
		}
	}
	f.employees = append(f.employees, *e)
	return nil
}

func (f *fakeEmployeeRepo) GetEmployeeByID(id string) (*models.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) GetEmployees() ([]models.Employee, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	out := make([]models.Employee, len(f.employees))
	copy(out, f.employees)
	sort.Slice(out, func(i, j int) bool {
		// Soonest visa expiry first; employees without a visa date go last.
		if (out[i].VisaExpiryDate == "") != (out[j].VisaExpiryDate == "") {
			return out[j].VisaExpiryDate == ""
		}
		return out[i].VisaExpiryDate < out[j].VisaExpiryDate
	})
	return out, nil
}

func (f *fakeEmployeeRepo) UpdateEmployee(e *models.Employee) error {
	for i, existing := range f.employees {
		if existing.ID == e.ID {
			f.employees[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) DeleteEmployee(id string) error {
	for i, e := range f.employees {
		if e.ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) ReplaceAllEmployees(employees []models.Employee) error {
	f.employees = append([]models.Employee(nil), employees...)
	return nil
}

func (f *fakeEmployeeRepo) DeleteAllEmployees() error {
	f.employees = nil
	return nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	failList      error
}

var _ repositories.NotificationRepository = (*fakeNotificationRepo)(nil)

func (f *fakeNotificationRepo) CreateNotifications(ns []models.Notification) error {
	f.notifications = append(f.notifications, ns...)
	return nil
}

func (f *fakeNotificationRepo) GetNotifications() ([]models.Notification, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	out := make([]models.Notification, len(f.notifications))
	copy(out, f.notifications)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeNotificationRepo) GetUnreadCount() (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(id string) error {
	for i, n := range f.notifications {
		if n.ID == id {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead() error {
	for i := range f.notifications {
		f.notifications[i].IsRead = true
	}
	return nil
}

func (f *fakeNotificationRepo) ReplaceAllNotifications(ns []models.Notification) error {
	f.notifications = append([]models.Notification(nil), ns...)
	return nil
}

func (f *fakeNotificationRepo) DeleteAllNotifications() error {
	f.notifications = nil
	return nil
}

type fakeSweepRepo struct {
	runs []models.SweepRun
}

var _ repositories.SweepRepository = (*fakeSweepRepo)(nil)

func (f *fakeSweepRepo) RecordSweep(run *models.SweepRun) error {
	run.ID = uint(len(f.runs) + 1)
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeSweepRepo) LatestSweep() (*models.SweepRun, error) {
	if len(f.runs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	run := f.runs[len(f.runs)-1]
	return &run, nil
}
