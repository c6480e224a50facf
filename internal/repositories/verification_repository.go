package repositories

import (
	"time"

	"github.com/cymate/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationRepository defines the interface for verification code operations
type VerificationRepository interface {
	ReplaceCode(verification *models.EmailVerification) error
	GetUnusedCode(email, code, purpose string) (*models.EmailVerification, error)
	GetActiveCode(email, purpose string, now time.Time) (*models.EmailVerification, error)
	UpdateCode(verification *models.EmailVerification) error
	DeleteByEmailAndPurpose(email, purpose string) (int64, error)
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
	DeleteUsedBefore(cutoff time.Time) (int64, error)
}

type postgresVerificationRepository struct {
	db *gorm.DB
}

// NewPostgresVerificationRepository creates a new VerificationRepository backed by PostgreSQL
func NewPostgresVerificationRepository(db *gorm.DB) VerificationRepository {
	return &postgresVerificationRepository{db: db}
}

// ReplaceCode atomically invalidates any unconsumed code for the
// (email, purpose) pair and persists the new one. The delete and the
// insert run in a single transaction with the surviving rows locked,
// so two concurrent issues cannot both leave an active code behind.
func (r *postgresVerificationRepository) ReplaceCode(verification *models.EmailVerification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stale []models.EmailVerification
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("email = ? AND purpose = ? AND is_used = false", verification.Email, verification.Purpose).
			Find(&stale).Error; err != nil {
			return err
		}
		if len(stale) > 0 {
			if err := tx.Where("email = ? AND purpose = ? AND is_used = false",
				verification.Email, verification.Purpose).
				Delete(&models.EmailVerification{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(verification).Error
	})
}

// GetUnusedCode retrieves an unconsumed code matching (email, code, purpose)
func (r *postgresVerificationRepository) GetUnusedCode(email, code, purpose string) (*models.EmailVerification, error) {
	var verification models.EmailVerification
	err := r.db.Where("email = ? AND code = ? AND purpose = ? AND is_used = false", email, code, purpose).
		Order("created_at DESC").
		First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// GetActiveCode retrieves the unconsumed, unexpired code for (email, purpose), if any
func (r *postgresVerificationRepository) GetActiveCode(email, purpose string, now time.Time) (*models.EmailVerification, error) {
	var verification models.EmailVerification
	err := r.db.Where("email = ? AND purpose = ? AND is_used = false AND expires_at > ?", email, purpose, now).
		Order("created_at DESC").
		First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// UpdateCode updates an existing verification code record
func (r *postgresVerificationRepository) UpdateCode(verification *models.EmailVerification) error {
	return r.db.Save(verification).Error
}

// DeleteByEmailAndPurpose deletes every code for the (email, purpose) pair
func (r *postgresVerificationRepository) DeleteByEmailAndPurpose(email, purpose string) (int64, error) {
	res := r.db.Where("email = ? AND purpose = ?", email, purpose).Delete(&models.EmailVerification{})
	return res.RowsAffected, res.Error
}

// DeleteExpiredBefore deletes codes whose expiry passed before the cutoff
func (r *postgresVerificationRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", cutoff).Delete(&models.EmailVerification{})
	return res.RowsAffected, res.Error
}

// DeleteUsedBefore deletes consumed codes created before the cutoff
func (r *postgresVerificationRepository) DeleteUsedBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("is_used = true AND created_at < ?", cutoff).Delete(&models.EmailVerification{})
	return res.RowsAffected, res.Error
}
