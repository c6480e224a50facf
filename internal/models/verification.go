package models

import "time"

// Verification code purposes
const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
)

// EmailVerification represents a single-use, time-boxed numeric code
// sent by email to gate registration and password reset.
type EmailVerification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index:idx_verification_lookup"`
	Code      string    `json:"-" gorm:"size:6;index:idx_verification_lookup"`
	Purpose   string    `json:"purpose" gorm:"size:20;index:idx_verification_lookup"` // registration, password_reset
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

// IsExpired reports whether the code's expiry has passed
func (v *EmailVerification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// IsValid reports whether the code is still usable (not consumed, not expired)
func (v *EmailVerification) IsValid(now time.Time) bool {
	return !v.IsUsed && !v.IsExpired(now)
}
