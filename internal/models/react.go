package models

import "gorm.io/gorm"

// Valid reaction types for a post
const (
	ReactLove  = "love"
	ReactLike  = "like"
	ReactAngry = "angry"
	ReactSad   = "sad"
	ReactHaha  = "haha"
)

// React represents a reaction on a post. A user holds at most one
// reaction per post; repeating the same reaction removes it.
type React struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index;uniqueIndex:idx_react_user_post"` // MongoDB ObjectID as string
	UserID uint   `json:"user_id" gorm:"index;uniqueIndex:idx_react_user_post"`
	Type   string `json:"type" gorm:"size:10"`
}

// ReactRequest defines the request body for reacting to a post
type ReactRequest struct {
	Type string `json:"type" validate:"required,oneof=love like angry sad haha"`
}
