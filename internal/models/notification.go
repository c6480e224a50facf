package models

import "time"

// Notification kinds fanned out from post interactions
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeShare   = "share"
	NotificationTypeCustom  = "custom"
)

// Notification represents an unread user notification (PostgreSQL).
// Marking a notification as read deletes the row; only unread rows
// are ever surfaced.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	SenderID    *uint     `json:"sender_id,omitempty" gorm:"index"`
	Type        string    `json:"type" gorm:"size:20;index"` // like, comment, share, custom
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	PostID      string    `json:"post_id,omitempty"` // subject post (MongoDB ObjectID as string), optional
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
