package repositories

import (
	"fmt"

	"github.com/cymate/backend/internal/models"
	"gorm.io/gorm"
)

// ShareRepository defines the interface for share data operations
type ShareRepository interface {
	CreateShare(share *models.Share) error
	GetShare(postID string, userID uint) (*models.Share, error)
	DeleteShare(postID string, userID uint) error
	GetSharesCountByPostID(postID string) (int64, error)
}

// PostgresShareRepository implements ShareRepository for PostgreSQL
type PostgresShareRepository struct {
	db *gorm.DB
}

// NewPostgresShareRepository creates a new PostgresShareRepository
func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

// CreateShare creates a new share in PostgreSQL
func (r *PostgresShareRepository) CreateShare(share *models.Share) error {
	return r.db.Create(share).Error
}

// GetShare retrieves a specific share by postID and userID
func (r *PostgresShareRepository) GetShare(postID string, userID uint) (*models.Share, error) {
	var share models.Share
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// DeleteShare removes a share from PostgreSQL. The delete is unscoped
// so the (user, post) unique index frees up for a later re-share.
func (r *PostgresShareRepository) DeleteShare(postID string, userID uint) error {
	res := r.db.Unscoped().Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Share{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("share not found")
	}
	return nil
}

// GetSharesCountByPostID retrieves the count of shares for a specific post from PostgreSQL
func (r *PostgresShareRepository) GetSharesCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Share{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
