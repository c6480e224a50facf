package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID      uint               `json:"author_id" bson:"author_id"`
	PostType      string             `json:"post_type" bson:"post_type"` // post, blog, question, event
	Title         string             `json:"title" bson:"title"`
	Content       string             `json:"content" bson:"content"`
	ImageURLs     []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	Tags          []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	ReactsCount   int                `json:"reacts_count" bson:"reacts_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	SharesCount   int                `json:"shares_count" bson:"shares_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	PostType  string   `json:"post_type" validate:"omitempty,oneof=post blog question event"`
	Title     string   `json:"title" validate:"required,min=1,max=100"`
	Content   string   `json:"content" validate:"required,min=1,max=5000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	PostType  string   `json:"post_type,omitempty" validate:"omitempty,oneof=post blog question event"`
	Title     string   `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Content   string   `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}
