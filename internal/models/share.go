package models

import "gorm.io/gorm"

// Share represents a reshare of a post. Sharing the same post again
// removes the share.
type Share struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index;uniqueIndex:idx_share_user_post"` // MongoDB ObjectID as string
	UserID uint   `json:"user_id" gorm:"index;uniqueIndex:idx_share_user_post"`
}
