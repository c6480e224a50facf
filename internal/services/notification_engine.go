package services

import (
	"fmt"
	"time"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
)

// DefaultNotificationRetentionDays is how long notifications are kept
// before the periodic cleanup removes them.
const DefaultNotificationRetentionDays = 30

// notificationTemplates maps a notification kind to its message template.
// The single argument is the sender's username.
var notificationTemplates = map[string]string{
	models.NotificationTypeLike:    "%s liked your post",
	models.NotificationTypeComment: "%s commented on your post",
	models.NotificationTypeShare:   "%s shared your post",
}

const defaultNotificationMessage = "You have a new notification"

// NotificationEngine translates interaction events into notification
// records and serves them back. It does not guard against
// self-notification; every call site must check recipient != sender
// before calling Notify.
type NotificationEngine struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
}

// NewNotificationEngine creates a new NotificationEngine
func NewNotificationEngine(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationEngine {
	return &NotificationEngine{
		notifications: notifRepo,
		users:         userRepo,
	}
}

// Notify creates one notification for the recipient, attributed to the
// sender, with a message rendered from the kind's template. postID may
// be empty when the event has no subject post.
func (e *NotificationEngine) Notify(recipientID, senderID uint, kind, postID string) (*models.Notification, error) {
	sender, err := e.users.GetUserByID(senderID)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	message := defaultNotificationMessage
	if tmpl, ok := notificationTemplates[kind]; ok {
		message = fmt.Sprintf(tmpl, sender.Username)
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    &sender.ID,
		Type:        kind,
		Message:     message,
		PostID:      postID,
	}
	if err := e.notifications.CreateNotification(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// NotifyCustom creates a custom-kind notification with an explicit message
func (e *NotificationEngine) NotifyCustom(recipientID, senderID uint, message string) (*models.Notification, error) {
	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    &senderID,
		Type:        models.NotificationTypeCustom,
		Message:     message,
	}
	if err := e.notifications.CreateNotification(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// ListUnread returns all unread notifications for the user, most recent first
func (e *NotificationEngine) ListUnread(userID uint) ([]models.Notification, error) {
	return e.notifications.GetUnreadByRecipientID(userID)
}

// UnreadCount returns the number of unread notifications for the user
func (e *NotificationEngine) UnreadCount(userID uint) (int64, error) {
	return e.notifications.GetUnreadCount(userID)
}

// MarkRead marks a single notification as read by deleting it. A
// notification that is absent or owned by another user fails with
// ErrNotFound either way.
func (e *NotificationEngine) MarkRead(userID, notificationID uint) error {
	deleted, err := e.notifications.DeleteByIDAndRecipient(notificationID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead deletes all unread notifications of the user and reports
// how many there were. A user with no unread notifications is a no-op,
// not an error.
func (e *NotificationEngine) MarkAllRead(userID uint) (int64, error) {
	return e.notifications.DeleteUnreadByRecipient(userID)
}

// Cleanup deletes all notifications older than the given number of days.
// Intended for periodic maintenance, not user-triggered paths.
func (e *NotificationEngine) Cleanup(olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		olderThanDays = DefaultNotificationRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	return e.notifications.DeleteOlderThan(cutoff)
}
