package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"gorm.io/gorm"
)

const (
	// CodeLength is the number of digits in a verification code
	CodeLength = 6

	// CodeExpiry is how long an issued code stays valid
	CodeExpiry = 15 * time.Minute

	// DefaultExpiredRetentionHours is how long expired codes linger
	// before the periodic cleanup removes them.
	DefaultExpiredRetentionHours = 24

	// usedRetention is how long consumed codes are kept for auditing
	usedRetention = 7 * 24 * time.Hour
)

// MailGateway sends a rendered message to an address. Implementations
// may retry internally; the lifecycle itself never retries.
type MailGateway interface {
	Send(to, subject, htmlBody, textBody string) error
}

// VerificationService manages the lifecycle of single-use, time-boxed
// numeric codes gating registration and password reset.
type VerificationService struct {
	codes repositories.VerificationRepository
	mail  MailGateway
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(codeRepo repositories.VerificationRepository, mail MailGateway) *VerificationService {
	return &VerificationService{
		codes: codeRepo,
		mail:  mail,
	}
}

// GenerateCode returns a 6-digit numeric code, each digit sampled uniformly
func GenerateCode() string {
	var b strings.Builder
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// Issue invalidates any unconsumed code for the (email, purpose) pair
// and persists a fresh one expiring in CodeExpiry. userID may be nil
// when the email does not belong to an account yet.
func (s *VerificationService) Issue(email, purpose string, userID *uint) (*models.EmailVerification, error) {
	now := time.Now()
	verification := &models.EmailVerification{
		Email:     email,
		Code:      GenerateCode(),
		Purpose:   purpose,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(CodeExpiry),
	}
	if err := s.codes.ReplaceCode(verification); err != nil {
		return nil, fmt.Errorf("issue verification code: %w", err)
	}
	return verification, nil
}

// Dispatch renders the purpose-specific message and hands it to the
// mail gateway. A failure here does not roll back Issue; the code
// remains valid even if the email never arrived.
func (s *VerificationService) Dispatch(email, code, purpose string, user *models.User) error {
	subject, htmlBody, textBody, err := renderVerificationEmail(email, code, purpose, user)
	if err != nil {
		return err
	}
	if err := s.mail.Send(email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

// Verify consumes the code exactly once. It fails with ErrInvalidCode
// when no unconsumed match exists and with ErrCodeExpired when the
// match has lapsed; expired codes are left in place for the periodic
// cleanup rather than deleted here.
func (s *VerificationService) Verify(email, code, purpose string) (*models.EmailVerification, error) {
	verification, err := s.codes.GetUnusedCode(email, code, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if verification.IsExpired(time.Now()) {
		return nil, ErrCodeExpired
	}

	verification.IsUsed = true
	if err := s.codes.UpdateCode(verification); err != nil {
		return nil, err
	}
	return verification, nil
}

// Resend composes Issue and Dispatch with the same invalidate-then-recreate
// semantics as Issue. The issued code stays valid even when the dispatch
// fails; the error tells the caller the email did not go out.
func (s *VerificationService) Resend(email, purpose string, user *models.User) (*models.EmailVerification, error) {
	var userID *uint
	if user != nil {
		userID = &user.ID
	}
	verification, err := s.Issue(email, purpose, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Dispatch(email, verification.Code, purpose, user); err != nil {
		return verification, err
	}
	return verification, nil
}

// HasActiveCode returns the unconsumed, unexpired code for the
// (email, purpose) pair, or nil when none exists.
func (s *VerificationService) HasActiveCode(email, purpose string) (*models.EmailVerification, error) {
	verification, err := s.codes.GetActiveCode(email, purpose, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return verification, nil
}

// PurgeCodes deletes every code for the (email, purpose) pair. Used
// after a completed password reset.
func (s *VerificationService) PurgeCodes(email, purpose string) error {
	_, err := s.codes.DeleteByEmailAndPurpose(email, purpose)
	return err
}

// Cleanup deletes codes whose expiry passed more than the threshold
// ago, plus consumed codes older than seven days. Maintenance-only.
func (s *VerificationService) Cleanup(expiredOlderThanHours int) (int64, error) {
	if expiredOlderThanHours <= 0 {
		expiredOlderThanHours = DefaultExpiredRetentionHours
	}
	now := time.Now()

	expired, err := s.codes.DeleteExpiredBefore(now.Add(-time.Duration(expiredOlderThanHours) * time.Hour))
	if err != nil {
		return expired, err
	}
	used, err := s.codes.DeleteUsedBefore(now.Add(-usedRetention))
	return expired + used, err
}
