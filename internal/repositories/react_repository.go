package repositories

import (
	"fmt"

	"github.com/cymate/backend/internal/models"
	"gorm.io/gorm"
)

// ReactRepository defines the interface for reaction data operations
type ReactRepository interface {
	CreateReact(react *models.React) error
	GetReact(postID string, userID uint) (*models.React, error)
	UpdateReact(react *models.React) error
	DeleteReact(postID string, userID uint) error
	GetReactsByPostID(postID string) ([]models.React, error)
	GetReactsCountByPostID(postID string) (int64, error)
}

// PostgresReactRepository implements ReactRepository for PostgreSQL
type PostgresReactRepository struct {
	db *gorm.DB
}

// NewPostgresReactRepository creates a new PostgresReactRepository
func NewPostgresReactRepository(db *gorm.DB) *PostgresReactRepository {
	return &PostgresReactRepository{db: db}
}

// CreateReact creates a new reaction in PostgreSQL
func (r *PostgresReactRepository) CreateReact(react *models.React) error {
	return r.db.Create(react).Error
}

// GetReact retrieves a specific reaction by postID and userID
func (r *PostgresReactRepository) GetReact(postID string, userID uint) (*models.React, error) {
	var react models.React
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&react).Error; err != nil {
		return nil, err
	}
	return &react, nil
}

// UpdateReact updates an existing reaction in PostgreSQL
func (r *PostgresReactRepository) UpdateReact(react *models.React) error {
	return r.db.Save(react).Error
}

// DeleteReact removes a reaction from PostgreSQL. The delete is
// unscoped so the (user, post) unique index frees up for a later
// re-reaction.
func (r *PostgresReactRepository) DeleteReact(postID string, userID uint) error {
	res := r.db.Unscoped().Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.React{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("react not found")
	}
	return nil
}

// GetReactsByPostID retrieves all reactions for a specific post from PostgreSQL
func (r *PostgresReactRepository) GetReactsByPostID(postID string) ([]models.React, error) {
	var reacts []models.React
	if err := r.db.Where("post_id = ?", postID).Find(&reacts).Error; err != nil {
		return nil, err
	}
	return reacts, nil
}

// GetReactsCountByPostID retrieves the count of reactions for a specific post from PostgreSQL
func (r *PostgresReactRepository) GetReactsCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.React{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
