package repositories

import (
	"fmt"

	"github.com/cymate/backend/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post data operations
type SavedPostRepository interface {
	CreateSavedPost(saved *models.SavedPost) error
	GetSavedPost(postID string, userID uint) (*models.SavedPost, error)
	DeleteSavedPost(postID string, userID uint) error
	GetSavedPostsByUserID(userID uint) ([]models.SavedPost, error)
}

// PostgresSavedPostRepository implements SavedPostRepository for PostgreSQL
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

// NewPostgresSavedPostRepository creates a new PostgresSavedPostRepository
func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

// CreateSavedPost creates a new saved post in PostgreSQL
func (r *PostgresSavedPostRepository) CreateSavedPost(saved *models.SavedPost) error {
	return r.db.Create(saved).Error
}

// GetSavedPost retrieves a specific saved post by postID and userID
func (r *PostgresSavedPostRepository) GetSavedPost(postID string, userID uint) (*models.SavedPost, error) {
	var saved models.SavedPost
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteSavedPost deletes a saved post from PostgreSQL
func (r *PostgresSavedPostRepository) DeleteSavedPost(postID string, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.SavedPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("saved post not found")
	}
	return nil
}

// GetSavedPostsByUserID retrieves all saved posts of a user, most recent first
func (r *PostgresSavedPostRepository) GetSavedPostsByUserID(userID uint) ([]models.SavedPost, error) {
	var saved []models.SavedPost
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}
