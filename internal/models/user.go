package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model        `json:"-"`
	ID                uint   `json:"id" gorm:"primaryKey"`
	Username          string `json:"username" gorm:"uniqueIndex"`
	DisplayName       string `json:"display_name"`
	Email             string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password          string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	JobTitle          string `json:"job_title,omitempty"`
	JobStatus         string `json:"job_status,omitempty"`
	Brief             string `json:"brief,omitempty"`
	YearsOfExperience int    `json:"years_of_experience"`
	PhoneNumber       string `json:"phone_number,omitempty"`
}

// UserCompact is the trimmed user representation embedded in enriched payloads
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// ToCompact converts a User to its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

// SignupRequest defines the request body for local registration.
// Registration requires a verification code previously sent to the email.
type SignupRequest struct {
	Username         string `json:"username" validate:"required,min=2,max=50"`
	DisplayName      string `json:"display_name" validate:"omitempty,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	VerificationCode string `json:"verification_code" validate:"required,len=6,numeric"`
}

// SignInRequest defines the request body for local authentication
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	DisplayName       string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	JobTitle          string `json:"job_title,omitempty" validate:"omitempty,max=100"`
	JobStatus         string `json:"job_status,omitempty" validate:"omitempty,max=100"`
	Brief             string `json:"brief,omitempty" validate:"omitempty,max=300"`
	YearsOfExperience int    `json:"years_of_experience,omitempty" validate:"omitempty,min=0,max=80"`
	PhoneNumber       string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
