package repositories

import (
	"github.com/visaflow/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Notifications are append-only: nothing here mutates a row except the
// IsRead flag, and only a full wipe deletes.
type NotificationRepository interface {
	CreateNotifications(notifications []models.Notification) error
	GetNotifications() ([]models.Notification, error)
	GetUnreadCount() (int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead() error
	ReplaceAllNotifications(notifications []models.Notification) error
	DeleteAllNotifications() error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// CreateNotifications appends a batch of freshly reconciled notifications.
func (r *postgresNotificationRepository) CreateNotifications(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

// GetNotifications returns the full history, newest first.
func (r *postgresNotificationRepository) GetNotifications() ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("is_read = false").Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead() error {
	return r.db.Model(&models.Notification{}).
		Where("is_read = false").
		Update("is_read", true).Error
}

// ReplaceAllNotifications swaps the whole collection for a restored backup.
func (r *postgresNotificationRepository) ReplaceAllNotifications(notifications []models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if len(notifications) == 0 {
			return nil
		}
		return tx.Create(&notifications).Error
	})
}

func (r *postgresNotificationRepository) DeleteAllNotifications() error {
	return r.db.Where("1 = 1").Delete(&models.Notification{}).Error
}
