package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/cymate/backend/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

var (
	errRecordNotFound = gorm.ErrRecordNotFound
	errSendFailed     = errors.New("send failed")
)

// newTestContext builds an echo context with the request validator wired
func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validators.NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticate stores JWT claims for userID on the context, the way the
// auth middleware does for real requests.
func authenticate(c echo.Context, userID uint) {
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

// fakeVerificationRepo implements repositories.VerificationRepository
// backed by an in-memory slice.
type fakeVerificationRepo struct {
	records []*models.EmailVerification
	nextID  uint
}

func (f *fakeVerificationRepo) ReplaceCode(v *models.EmailVerification) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if r.Email == v.Email && r.Purpose == v.Purpose && !r.IsUsed {
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	f.nextID++
	v.ID = f.nextID
	f.records = append(f.records, v)
	return nil
}

func (f *fakeVerificationRepo) GetUnusedCode(email, code, purpose string) (*models.EmailVerification, error) {
	for _, r := range f.records {
		if r.Email == email && r.Code == code && r.Purpose == purpose && !r.IsUsed {
			return r, nil
		}
	}
	return nil, errRecordNotFound
}

func (f *fakeVerificationRepo) GetActiveCode(email, purpose string, now time.Time) (*models.EmailVerification, error) {
	for _, r := range f.records {
		if r.Email == email && r.Purpose == purpose && r.IsValid(now) {
			return r, nil
		}
	}
	return nil, errRecordNotFound
}

func (f *fakeVerificationRepo) UpdateCode(v *models.EmailVerification) error {
	for i, r := range f.records {
		if r.ID == v.ID {
			f.records[i] = v
			return nil
		}
	}
	return errRecordNotFound
}

func (f *fakeVerificationRepo) DeleteByEmailAndPurpose(email, purpose string) (int64, error) {
	var deleted int64
	kept := f.records[:0]
	for _, r := range f.records {
		if r.Email == email && r.Purpose == purpose {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func (f *fakeVerificationRepo) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	var deleted int64
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ExpiresAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func (f *fakeVerificationRepo) DeleteUsedBefore(cutoff time.Time) (int64, error) {
	var deleted int64
	kept := f.records[:0]
	for _, r := range f.records {
		if r.IsUsed && r.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

// fakeNotificationRepo implements repositories.NotificationRepository
// backed by an in-memory slice.
type fakeNotificationRepo struct {
	records []*models.Notification
	nextID  uint
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.records = append(f.records, n)
	return nil
}

func (f *fakeNotificationRepo) GetUnreadByRecipientID(recipientID uint) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].RecipientID == recipientID && !f.records[i].IsRead {
			out = append(out, *f.records[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, r := range f.records {
		if r.RecipientID == recipientID && !r.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) DeleteByIDAndRecipient(notificationID, recipientID uint) (int64, error) {
	var deleted int64
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID == notificationID && r.RecipientID == recipientID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func (f *fakeNotificationRepo) DeleteUnreadByRecipient(recipientID uint) (int64, error) {
	var deleted int64
	kept := f.records[:0]
	for _, r := range f.records {
		if r.RecipientID == recipientID && !r.IsRead {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

func (f *fakeNotificationRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var deleted int64
	kept := f.records[:0]
	for _, r := range f.records {
		if r.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return deleted, nil
}

// fakeUserRepo implements repositories.UserRepository over a fixed user set
type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) CreateUser(u *models.User) error {
	u.ID = uint(len(f.users) + 1)
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errRecordNotFound
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errRecordNotFound
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(u *models.User) error {
	for i, existing := range f.users {
		if existing.ID == u.ID {
			f.users[i] = u
			return nil
		}
	}
	return errRecordNotFound
}

func (f *fakeUserRepo) DeleteUser(id uint) error {
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

func (f *fakeUserRepo) SearchUsers(query string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if strings.Contains(u.Username, query) || strings.Contains(u.DisplayName, query) {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakePostRepo implements repositories.PostRepository over an in-memory map
type fakePostRepo struct {
	posts map[string]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	f.posts[post.ID.Hex()] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return post, nil
}

func (f *fakePostRepo) GetPostsByAuthorID(_ context.Context, authorID uint, _, _ int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetPostsByAuthorIDs(_ context.Context, authorIDs []uint, _, _ int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		for _, id := range authorIDs {
			if p.AuthorID == id {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePostRepo) GetAllPosts(_ context.Context, _, _ int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	f.posts[id] = post
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) AdjustReactsCount(_ context.Context, postID string, delta int) error {
	if p, ok := f.posts[postID]; ok {
		p.ReactsCount += delta
	}
	return nil
}

func (f *fakePostRepo) AdjustCommentsCount(_ context.Context, postID string, delta int) error {
	if p, ok := f.posts[postID]; ok {
		p.CommentsCount += delta
	}
	return nil
}

func (f *fakePostRepo) AdjustSharesCount(_ context.Context, postID string, delta int) error {
	if p, ok := f.posts[postID]; ok {
		p.SharesCount += delta
	}
	return nil
}

// fakeCommentRepo implements repositories.CommentRepository over a slice
type fakeCommentRepo struct {
	comments []*models.Comment
	nextID   uint
}

func (f *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errRecordNotFound
}

func (f *fakeCommentRepo) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) UpdateComment(comment *models.Comment) error {
	for i, c := range f.comments {
		if c.ID == comment.ID {
			f.comments[i] = comment
			return nil
		}
	}
	return errRecordNotFound
}

func (f *fakeCommentRepo) DeleteComment(id uint) error {
	kept := f.comments[:0]
	for _, c := range f.comments {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.comments = kept
	return nil
}

// fakeMail records sends and optionally fails them
type fakeMail struct {
	sent []string
	fail bool
}

func (f *fakeMail) Send(to, subject, htmlBody, textBody string) error {
	if f.fail {
		return errSendFailed
	}
	f.sent = append(f.sent, to)
	return nil
}
