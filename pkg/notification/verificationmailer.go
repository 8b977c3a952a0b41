package notification

import (
	"context"
	"fmt"
	"strings"
)

// VerificationMailer adapts the notification manager to the verification
// workflow's Mailer interface for in-process delivery. Links point at the
// manager's base URL.
type VerificationMailer struct {
	manager *NotificationManager
}

// NewVerificationMailer creates a mailer over the given manager.
func NewVerificationMailer(manager *NotificationManager) *VerificationMailer {
	return &VerificationMailer{manager: manager}
}

// ConfirmURL builds the email-confirmation link for a token.
func ConfirmURL(appURL, token string) string {
	return fmt.Sprintf("%s/confirm-email?token=%s", strings.TrimSuffix(appURL, "/"), token)
}

// ResetURL builds the password-reset link for a token.
func ResetURL(appURL, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", strings.TrimSuffix(appURL, "/"), token)
}

func (m *VerificationMailer) SendSignupConfirmation(ctx context.Context, to, name, token string) error {
	return m.manager.Send(SignupConfirmationNotice, NotificationData{
		To: to,
		Data: map[string]string{
			"Name":       name,
			"ConfirmURL": ConfirmURL(m.manager.BaseURL(), token),
		},
	})
}

func (m *VerificationMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	return m.manager.Send(PasswordResetNotice, NotificationData{
		To: to,
		Data: map[string]string{
			"Name":     name,
			"ResetURL": ResetURL(m.manager.BaseURL(), token),
		},
	})
}
