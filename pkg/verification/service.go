// Package verification implements the token-based verification workflow:
// issuing and consuming email confirmation and password reset tokens.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/solvend/solvend/pkg/account"
	"github.com/solvend/solvend/pkg/token"
)

// Mailer delivers the two verification emails. Implementations include the
// HTTP client for the mailer microservice and the in-process notifier.
type Mailer interface {
	SendSignupConfirmation(ctx context.Context, to, name, token string) error
	SendPasswordReset(ctx context.Context, to, name, token string) error
}

// VerificationService drives the confirmation and reset flows. Both flows
// share the single pending-token slot on the account: issuing a token of
// either kind silently replaces any outstanding one.
type VerificationService struct {
	repo        account.AccountRepository
	accounts    *account.AccountService
	mailer      Mailer
	tokenLength int
	resetWindow time.Duration
}

// VerificationServiceOption configures a VerificationService.
type VerificationServiceOption func(*VerificationService)

// WithTokenLength sets the length of issued tokens.
func WithTokenLength(n int) VerificationServiceOption {
	return func(s *VerificationService) {
		s.tokenLength = n
	}
}

// WithResetWindow sets how long reset tokens stay valid.
func WithResetWindow(d time.Duration) VerificationServiceOption {
	return func(s *VerificationService) {
		s.resetWindow = d
	}
}

// NewVerificationService creates a new verification service.
func NewVerificationService(
	repo account.AccountRepository,
	accounts *account.AccountService,
	mailer Mailer,
	opts ...VerificationServiceOption,
) *VerificationService {
	s := &VerificationService{
		repo:        repo,
		accounts:    accounts,
		mailer:      mailer,
		tokenLength: token.DefaultLength,
		resetWindow: 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IssueConfirmation generates a confirmation token, persists it with the
// current timestamp and sends the confirmation email. Email delivery is best
// effort: a send failure is logged but does not fail signup, the account
// simply stays unconfirmed until the user asks for a resend.
func (s *VerificationService) IssueConfirmation(ctx context.Context, acct account.Account) (string, error) {
	tok := token.Generate(s.tokenLength)

	err := s.repo.SetPendingToken(ctx, acct.ID, account.PendingToken{
		Kind:     account.PendingConfirmation,
		Token:    tok,
		IssuedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("Failed to persist confirmation token", "account_id", acct.ID, "err", err)
		return "", fmt.Errorf("failed to issue confirmation token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendSignupConfirmation(ctx, acct.Email, acct.ContactName, tok); err != nil {
			slog.Error("Failed to send confirmation email", "account_id", acct.ID, "err", err)
		}
	}

	return tok, nil
}

// ResendConfirmation issues a fresh confirmation token for an unconfirmed
// account, replacing the prior one.
func (s *VerificationService) ResendConfirmation(ctx context.Context, email string) error {
	acct, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if acct.EmailConfirmed {
		return nil
	}

	_, err = s.IssueConfirmation(ctx, acct)
	return err
}

// ConfirmEmail consumes a confirmation token: on an exact match the account
// is marked confirmed and the token cleared. Confirmation tokens do not
// expire. Returns false when no account holds the token.
func (s *VerificationService) ConfirmEmail(ctx context.Context, tok string) (bool, error) {
	acct, err := s.repo.GetByPendingToken(ctx, account.PendingConfirmation, tok)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.repo.MarkEmailConfirmed(ctx, acct.ID); err != nil {
		slog.Error("Failed to mark email confirmed", "account_id", acct.ID, "err", err)
		return false, fmt.Errorf("failed to confirm email: %w", err)
	}

	if err := s.repo.ClearPendingToken(ctx, acct.ID); err != nil {
		slog.Error("Failed to clear confirmation token", "account_id", acct.ID, "err", err)
		// Email is confirmed, the stale token no longer matters.
	}

	slog.Info("Email confirmed", "account_id", acct.ID)
	return true, nil
}

// RequestPasswordReset issues a reset token for the account with the given
// email. Unknown emails report success without sending anything so the
// response cannot be used to enumerate accounts. A new token overwrites any
// outstanding token of either kind.
func (s *VerificationService) RequestPasswordReset(ctx context.Context, email string) error {
	acct, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			slog.Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	tok := token.Generate(s.tokenLength)
	err = s.repo.SetPendingToken(ctx, acct.ID, account.PendingToken{
		Kind:     account.PendingReset,
		Token:    tok,
		IssuedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("Failed to persist reset token", "account_id", acct.ID, "err", err)
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordReset(ctx, acct.Email, acct.ContactName, tok); err != nil {
			slog.Error("Failed to send reset email", "account_id", acct.ID, "err", err)
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	slog.Info("Reset token issued", "account_id", acct.ID)
	return nil
}

// ResetPassword consumes a reset token and updates the credential. Tokens
// older than the reset window fail with ErrTokenExpired and leave the
// credential untouched. If the credential update succeeds but clearing the
// token fails, the password change stands: cleanup never rolls back a
// completed credential update.
func (s *VerificationService) ResetPassword(ctx context.Context, tok, newPassword string) error {
	if !token.Validate(tok) {
		return ErrTokenInvalid
	}

	acct, err := s.repo.GetByPendingToken(ctx, account.PendingReset, tok)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	if acct.Pending == nil {
		return ErrTokenInvalid
	}

	elapsed := time.Since(acct.Pending.IssuedAt).Hours()
	if elapsed > s.resetWindow.Hours() {
		slog.Warn("Reset token expired", "account_id", acct.ID, "elapsed_hours", elapsed)
		return ErrTokenExpired
	}

	if err := s.accounts.UpdatePassword(ctx, acct.ID, newPassword); err != nil {
		return err
	}

	if err := s.repo.ClearPendingToken(ctx, acct.ID); err != nil {
		slog.Error("Failed to clear reset token after password update", "account_id", acct.ID, "err", err)
	}

	slog.Info("Password reset completed", "account_id", acct.ID)
	return nil
}
