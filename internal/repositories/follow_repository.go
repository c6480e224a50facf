package repositories

import (
	"fmt"

	"github.com/cymate/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowingIDs(followerID uint) ([]uint, error)
	GetFollowersCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow creates a new follow relationship in PostgreSQL
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// DeleteFollow removes a follow relationship from PostgreSQL
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow not found")
	}
	return nil
}

// IsFollowing checks if followerID follows followingID
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowingIDs retrieves the IDs of all users followed by followerID
func (r *PostgresFollowRepository) GetFollowingIDs(followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// GetFollowersCount retrieves the number of followers of a user
func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
