package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-test-secret"

func newVerificationFixture() (*VerificationHandler, *fakeVerificationRepo, *fakeUserRepo, *fakeMail) {
	codeRepo := &fakeVerificationRepo{}
	userRepo := &fakeUserRepo{}
	mail := &fakeMail{}
	svc := services.NewVerificationService(codeRepo, mail)
	return NewVerificationHandler(svc, userRepo, testSecret), codeRepo, userRepo, mail
}

func TestSendCodeIssuesAndMails(t *testing.T) {
	h, codeRepo, _, mail := newVerificationFixture()

	body := `{"email":"new@cymate.io","purpose":"registration"}`
	c, rec := newTestContext(t, http.MethodPost, "/send-code", body)

	require.NoError(t, h.SendCode(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(t, float64(15), payload["expires_in_minutes"])
	require.Len(t, codeRepo.records, 1)
	assert.Len(t, codeRepo.records[0].Code, 6)
	assert.Equal(t, []string{"new@cymate.io"}, mail.sent)
}

func TestSendCodeRegistrationForExistingEmailConflicts(t *testing.T) {
	h, _, userRepo, _ := newVerificationFixture()
	userRepo.users = append(userRepo.users, &models.User{ID: 1, Email: "taken@cymate.io"})

	body := `{"email":"taken@cymate.io","purpose":"registration"}`
	c, _ := newTestContext(t, http.MethodPost, "/send-code", body)

	err := h.SendCode(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestSendCodeReplacesPreviousCode(t *testing.T) {
	h, codeRepo, _, _ := newVerificationFixture()

	for i := 0; i < 2; i++ {
		body := `{"email":"new@cymate.io","purpose":"registration"}`
		c, rec := newTestContext(t, http.MethodPost, "/send-code", body)
		require.NoError(t, h.SendCode(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Len(t, codeRepo.records, 1, "only the most recent code may stay active")
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	h, _, _, _ := newVerificationFixture()

	body := `{"email":"new@cymate.io","code":"111111","purpose":"registration"}`
	c, _ := newTestContext(t, http.MethodPost, "/verify-code", body)

	err := h.VerifyCode(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Invalid verification code", he.Message)
}

func TestVerifyCodeConsumesCode(t *testing.T) {
	h, codeRepo, _, _ := newVerificationFixture()

	sendBody := `{"email":"new@cymate.io","purpose":"registration"}`
	c, _ := newTestContext(t, http.MethodPost, "/send-code", sendBody)
	require.NoError(t, h.SendCode(c))
	code := codeRepo.records[0].Code

	verifyBody := fmt.Sprintf(`{"email":"new@cymate.io","code":%q,"purpose":"registration"}`, code)
	c, rec := newTestContext(t, http.MethodPost, "/verify-code", verifyBody)
	require.NoError(t, h.VerifyCode(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, codeRepo.records[0].IsUsed)

	// verified_at reflects when the code was consumed, not when it was issued
	body := decodeBody(t, rec)
	verifiedAt, err := time.Parse(time.RFC3339, body["verified_at"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), verifiedAt, time.Minute)

	// The same code cannot be consumed twice
	c, _ = newTestContext(t, http.MethodPost, "/verify-code", verifyBody)
	err = h.VerifyCode(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPasswordResetFlowEndToEnd(t *testing.T) {
	h, codeRepo, userRepo, _ := newVerificationFixture()
	oldHash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	userRepo.users = append(userRepo.users, &models.User{ID: 1, Email: "amr@cymate.io", Password: string(oldHash)})

	sendBody := `{"email":"amr@cymate.io","purpose":"password_reset"}`
	c, rec := newTestContext(t, http.MethodPost, "/send-code", sendBody)
	require.NoError(t, h.SendCode(c))
	require.Equal(t, http.StatusOK, rec.Code)
	code := codeRepo.records[0].Code

	verifyBody := fmt.Sprintf(`{"email":"amr@cymate.io","code":%q,"purpose":"password_reset"}`, code)
	c, rec = newTestContext(t, http.MethodPost, "/verify-code", verifyBody)
	require.NoError(t, h.VerifyCode(c))

	payload := decodeBody(t, rec)
	token, ok := payload["verification_token"].(string)
	require.True(t, ok, "password reset verification must return a token")
	assert.Equal(t, float64(30), payload["token_expires_in_minutes"])

	resetBody := fmt.Sprintf(`{"email":"amr@cymate.io","new_password":"brand-new-pass","confirm_password":"brand-new-pass","verification_token":%q}`, token)
	c, rec = newTestContext(t, http.MethodPost, "/reset-password-confirm", resetBody)
	require.NoError(t, h.ResetPasswordConfirm(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(userRepo.users[0].Password), []byte("brand-new-pass")))
	assert.Empty(t, codeRepo.records, "completed reset purges remaining codes")
}

func TestResetPasswordConfirmRejectsBadToken(t *testing.T) {
	h, _, userRepo, _ := newVerificationFixture()
	userRepo.users = append(userRepo.users, &models.User{ID: 1, Email: "amr@cymate.io"})

	body := `{"email":"amr@cymate.io","new_password":"brand-new-pass","confirm_password":"brand-new-pass","verification_token":"bogus:123"}`
	c, _ := newTestContext(t, http.MethodPost, "/reset-password-confirm", body)

	err := h.ResetPasswordConfirm(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestStatusReportsActiveCode(t *testing.T) {
	h, _, _, _ := newVerificationFixture()

	c, rec := newTestContext(t, http.MethodGet, "/status?email=new@cymate.io&type=registration", "")
	require.NoError(t, h.Status(c))
	payload := decodeBody(t, rec)
	assert.Equal(t, false, payload["has_active_code"])

	sendBody := `{"email":"new@cymate.io","purpose":"registration"}`
	c, _ = newTestContext(t, http.MethodPost, "/send-code", sendBody)
	require.NoError(t, h.SendCode(c))

	c, rec = newTestContext(t, http.MethodGet, "/status?email=new@cymate.io&type=registration", "")
	require.NoError(t, h.Status(c))
	payload = decodeBody(t, rec)
	assert.Equal(t, true, payload["has_active_code"])
}
