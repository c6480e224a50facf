package repositories

import (
	"time"

	"github.com/cymate/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Notifications are surfaced only while unread; reading one deletes it.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetUnreadByRecipientID(recipientID uint) ([]models.Notification, error)
	GetUnreadCount(recipientID uint) (int64, error)
	DeleteByIDAndRecipient(notificationID, recipientID uint) (int64, error)
	DeleteUnreadByRecipient(recipientID uint) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetUnreadByRecipientID returns the recipient's unread notifications, most recent first
func (r *postgresNotificationRepository) GetUnreadByRecipientID(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ? AND is_read = false", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}

// DeleteByIDAndRecipient deletes the notification iff it belongs to the recipient,
// returning the number of rows removed
func (r *postgresNotificationRepository) DeleteByIDAndRecipient(notificationID, recipientID uint) (int64, error) {
	res := r.db.Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// DeleteUnreadByRecipient deletes all unread notifications of the recipient
func (r *postgresNotificationRepository) DeleteUnreadByRecipient(recipientID uint) (int64, error) {
	res := r.db.Where("recipient_id = ? AND is_read = false", recipientID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// DeleteOlderThan deletes all notifications created before the cutoff
func (r *postgresNotificationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
