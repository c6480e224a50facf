package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cymate/backend/internal/models"
	"github.com/cymate/backend/internal/repositories"
	"github.com/cymate/backend/internal/services"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// VerificationHandler handles email verification HTTP requests
type VerificationHandler struct {
	verification   *services.VerificationService
	userRepository repositories.UserRepository
	tokenSecret    string
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verification *services.VerificationService, userRepo repositories.UserRepository, tokenSecret string) *VerificationHandler {
	return &VerificationHandler{
		verification:   verification,
		userRepository: userRepo,
		tokenSecret:    tokenSecret,
	}
}

// RegisterVerificationRoutes registers email verification routes
func (h *VerificationHandler) RegisterVerificationRoutes(g *echo.Group) {
	g.POST("/send-code", h.SendCode)
	g.POST("/verify-code", h.VerifyCode)
	g.POST("/resend-code", h.ResendCode)
	g.POST("/reset-password-confirm", h.ResetPasswordConfirm)
	g.GET("/status", h.Status)
}

// SendCodeRequest defines the request body for sending a verification code
type SendCodeRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=registration password_reset"`
}

// VerifyCodeRequest defines the request body for verifying a code
type VerifyCodeRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
	Purpose string `json:"purpose" validate:"required,oneof=registration password_reset"`
}

// ResetPasswordConfirmRequest defines the request body for confirming a password reset
type ResetPasswordConfirmRequest struct {
	Email             string `json:"email" validate:"required,email"`
	NewPassword       string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword   string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
	VerificationToken string `json:"verification_token" validate:"required"`
}

// SendCode issues a fresh verification code and emails it. Issuing
// invalidates any previous unconsumed code for the (email, purpose)
// pair.
func (h *VerificationHandler) SendCode(c echo.Context) error {
	var req SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.lookupUser(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if req.Purpose == models.PurposeRegistration && user != nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already exists")
	}

	var userID *uint
	if user != nil {
		userID = &user.ID
	}

	verification, err := h.verification.Issue(req.Email, req.Purpose, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.verification.Dispatch(req.Email, verification.Code, req.Purpose, user); err != nil {
		// The code stays valid; the email just did not go out.
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send verification email")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":            "Verification code sent successfully",
		"email":              req.Email,
		"expires_in_minutes": int(services.CodeExpiry.Minutes()),
	})
}

// VerifyCode consumes a verification code exactly once. On a
// password-reset verification it returns the derived token that gates
// the later password change.
func (h *VerificationHandler) VerifyCode(c echo.Context) error {
	var req VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.verification.Verify(req.Email, req.Code, req.Purpose); err != nil {
		switch {
		case errors.Is(err, services.ErrCodeExpired):
			return echo.NewHTTPError(http.StatusBadRequest, "Verification code has expired")
		case errors.Is(err, services.ErrInvalidCode):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid verification code")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	response := echo.Map{
		"message":     "Verification successful",
		"email":       req.Email,
		"purpose":     req.Purpose,
		"verified_at": time.Now(),
	}

	if req.Purpose == models.PurposePasswordReset {
		response["verification_token"] = services.IssueResetToken(req.Email, h.tokenSecret, time.Now())
		response["token_expires_in_minutes"] = int(services.ResetTokenTTL.Minutes())
	}

	return c.JSON(http.StatusOK, response)
}

// ResendCode invalidates the previous code and sends a fresh one
func (h *VerificationHandler) ResendCode(c echo.Context) error {
	var req SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.lookupUser(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.verification.Resend(req.Email, req.Purpose, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send verification email")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":            "Verification code sent successfully",
		"email":              req.Email,
		"expires_in_minutes": int(services.CodeExpiry.Minutes()),
	})
}

// ResetPasswordConfirm changes the password after re-validating the
// derived token issued by VerifyCode, then purges any remaining
// password-reset codes for the email.
func (h *VerificationHandler) ResetPasswordConfirm(c echo.Context) error {
	var req ResetPasswordConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if !services.ValidateResetToken(req.Email, req.VerificationToken, h.tokenSecret, time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired verification token")
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user.Password = string(hashedPassword)
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Clean up any remaining password-reset codes for this email
	if err := h.verification.PurgeCodes(req.Email, models.PurposePasswordReset); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Password reset successfully",
		"email":   req.Email,
	})
}

// Status reports whether an active (unconsumed, unexpired) code exists
// for the email and purpose.
func (h *VerificationHandler) Status(c echo.Context) error {
	email := c.QueryParam("email")
	purpose := c.QueryParam("type")
	if email == "" || purpose == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and type parameters are required")
	}

	verification, err := h.verification.HasActiveCode(email, purpose)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if verification == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"has_active_code": false,
			"message":         "No active verification code found",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"has_active_code": true,
		"expires_at":      verification.ExpiresAt,
		"created_at":      verification.CreatedAt,
	})
}

func (h *VerificationHandler) lookupUser(email string) (*models.User, error) {
	user, err := h.userRepository.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
