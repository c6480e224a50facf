package services

import (
	"time"

	"github.com/cymate/backend/internal/models"
)

// fakeNotificationRepo implements repositories.NotificationRepository
// with overridable function fields.
type fakeNotificationRepo struct {
	CreateNotificationFn      func(*models.Notification) error
	GetUnreadByRecipientIDFn  func(uint) ([]models.Notification, error)
	GetUnreadCountFn          func(uint) (int64, error)
	DeleteByIDAndRecipientFn  func(uint, uint) (int64, error)
	DeleteUnreadByRecipientFn func(uint) (int64, error)
	DeleteOlderThanFn         func(time.Time) (int64, error)
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	return f.CreateNotificationFn(n)
}

func (f *fakeNotificationRepo) GetUnreadByRecipientID(recipientID uint) ([]models.Notification, error) {
	return f.GetUnreadByRecipientIDFn(recipientID)
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	return f.GetUnreadCountFn(recipientID)
}

func (f *fakeNotificationRepo) DeleteByIDAndRecipient(notificationID, recipientID uint) (int64, error) {
	return f.DeleteByIDAndRecipientFn(notificationID, recipientID)
}

func (f *fakeNotificationRepo) DeleteUnreadByRecipient(recipientID uint) (int64, error) {
	return f.DeleteUnreadByRecipientFn(recipientID)
}

func (f *fakeNotificationRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	return f.DeleteOlderThanFn(cutoff)
}

// fakeUserRepo implements repositories.UserRepository with overridable
// function fields.
type fakeUserRepo struct {
	CreateUserFn        func(*models.User) error
	GetUserByIDFn       func(uint) (*models.User, error)
	GetUserByEmailFn    func(string) (*models.User, error)
	GetUserByUsernameFn func(string) (*models.User, error)
	UpdateUserFn        func(*models.User) error
	DeleteUserFn        func(uint) error
	SearchUsersFn       func(string) ([]models.User, error)
}

func (f *fakeUserRepo) CreateUser(u *models.User) error { return f.CreateUserFn(u) }

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) { return f.GetUserByIDFn(id) }

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	return f.GetUserByEmailFn(email)
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	return f.GetUserByUsernameFn(username)
}

func (f *fakeUserRepo) UpdateUser(u *models.User) error { return f.UpdateUserFn(u) }

func (f *fakeUserRepo) DeleteUser(id uint) error { return f.DeleteUserFn(id) }

func (f *fakeUserRepo) SearchUsers(query string) ([]models.User, error) {
	return f.SearchUsersFn(query)
}

// fakeVerificationRepo implements repositories.VerificationRepository
// with overridable function fields.
type fakeVerificationRepo struct {
	ReplaceCodeFn             func(*models.EmailVerification) error
	GetUnusedCodeFn           func(string, string, string) (*models.EmailVerification, error)
	GetActiveCodeFn           func(string, string, time.Time) (*models.EmailVerification, error)
	UpdateCodeFn              func(*models.EmailVerification) error
	DeleteByEmailAndPurposeFn func(string, string) (int64, error)
	DeleteExpiredBeforeFn     func(time.Time) (int64, error)
	DeleteUsedBeforeFn        func(time.Time) (int64, error)
}

func (f *fakeVerificationRepo) ReplaceCode(v *models.EmailVerification) error {
	return f.ReplaceCodeFn(v)
}

func (f *fakeVerificationRepo) GetUnusedCode(email, code, purpose string) (*models.EmailVerification, error) {
	return f.GetUnusedCodeFn(email, code, purpose)
}

func (f *fakeVerificationRepo) GetActiveCode(email, purpose string, now time.Time) (*models.EmailVerification, error) {
	return f.GetActiveCodeFn(email, purpose, now)
}

func (f *fakeVerificationRepo) UpdateCode(v *models.EmailVerification) error {
	return f.UpdateCodeFn(v)
}

func (f *fakeVerificationRepo) DeleteByEmailAndPurpose(email, purpose string) (int64, error) {
	return f.DeleteByEmailAndPurposeFn(email, purpose)
}

func (f *fakeVerificationRepo) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	return f.DeleteExpiredBeforeFn(cutoff)
}

func (f *fakeVerificationRepo) DeleteUsedBefore(cutoff time.Time) (int64, error) {
	return f.DeleteUsedBeforeFn(cutoff)
}

// fakeMailGateway implements MailGateway and records every send
type fakeMailGateway struct {
	SendFn func(to, subject, htmlBody, textBody string) error
	sent   []sentMail
}

type sentMail struct {
	to      string
	subject string
	html    string
	text    string
}

func (f *fakeMailGateway) Send(to, subject, htmlBody, textBody string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: htmlBody, text: textBody})
	if f.SendFn != nil {
		return f.SendFn(to, subject, htmlBody, textBody)
	}
	return nil
}
