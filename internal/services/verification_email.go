package services

import (
	"fmt"

	"github.com/cymate/backend/internal/models"
)

const supportEmail = "support@cymate.io"

// renderVerificationEmail builds the subject and bodies for a
// verification code message. The wording differs per purpose.
func renderVerificationEmail(email, code, purpose string, user *models.User) (subject, htmlBody, textBody string, err error) {
	greeting := "Hi!"
	if user != nil && user.DisplayName != "" {
		greeting = fmt.Sprintf("Hi %s!", user.DisplayName)
	}
	expiry := int(CodeExpiry.Minutes())

	switch purpose {
	case models.PurposeRegistration:
		subject = "Welcome to CyMate - Verify Your Email"
		textBody = fmt.Sprintf(`Welcome to CyMate!

%s

Thank you for joining CyMate! To complete your registration, please verify your email address.

Your verification code is: %s

This code will expire in %d minutes.

Enter this code in the verification form to activate your account.

If you didn't create an account with us, please ignore this email.

Welcome aboard!
The CyMate Team

---
This email was sent to %s. If you have any questions, contact us at %s.
`, greeting, code, expiry, email, supportEmail)
		htmlBody = fmt.Sprintf(`
			<p>%s</p>
			<p>Thank you for joining CyMate! To complete your registration, please verify your email address.</p>

			<p>Your verification code is: <strong>%s</strong></p>

			<p>This code will expire in %d minutes.</p>
			<p>Enter this code in the verification form to activate your account.</p>
			<p>If you didn't create an account with us, please ignore this email.</p>

			<p>Welcome aboard!</p>
			<p>The CyMate Team</p>
		`, greeting, code, expiry)

	case models.PurposePasswordReset:
		subject = "CyMate Password Reset Verification"
		textBody = fmt.Sprintf(`CyMate Password Reset

%s

We received a request to reset the password for your CyMate account.

Your verification code is: %s

This code will expire in %d minutes.

Enter this code in the password reset form to continue.

If you didn't request this password reset, please ignore this email. Your account remains secure.

Stay safe,
The CyMate Security Team

---
This email was sent to %s. If you have any questions, contact us at %s.
`, greeting, code, expiry, email, supportEmail)
		htmlBody = fmt.Sprintf(`
			<p>%s</p>
			<p>We received a request to reset the password for your CyMate account.</p>

			<p>Your verification code is: <strong>%s</strong></p>

			<p>This code will expire in %d minutes.</p>
			<p>Enter this code in the password reset form to continue.</p>
			<p>If you didn't request this password reset, please ignore this email. Your account remains secure.</p>

			<p>Stay safe,</p>
			<p>The CyMate Security Team</p>
		`, greeting, code, expiry)

	default:
		return "", "", "", fmt.Errorf("unknown verification purpose %q", purpose)
	}

	return subject, htmlBody, textBody, nil
}
