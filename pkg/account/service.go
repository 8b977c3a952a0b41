package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AccountService wraps the account store with signup, signin and credential
// operations.
type AccountService struct {
	repo          AccountRepository
	jwtSecret     string
	jwtIssuer     string
	sessionExpiry time.Duration
	lookupTimeout time.Duration
}

// AccountServiceOption configures an AccountService.
type AccountServiceOption func(*AccountService)

// WithJwtSecret sets the HS256 signing secret for session tokens.
func WithJwtSecret(secret string) AccountServiceOption {
	return func(s *AccountService) {
		s.jwtSecret = secret
	}
}

// WithJwtIssuer sets the issuer claim on session tokens.
func WithJwtIssuer(issuer string) AccountServiceOption {
	return func(s *AccountService) {
		s.jwtIssuer = issuer
	}
}

// WithSessionExpiry sets how long session tokens are valid.
func WithSessionExpiry(d time.Duration) AccountServiceOption {
	return func(s *AccountService) {
		s.sessionExpiry = d
	}
}

// WithLookupTimeout sets the deadline for the current-account lookup.
func WithLookupTimeout(d time.Duration) AccountServiceOption {
	return func(s *AccountService) {
		s.lookupTimeout = d
	}
}

// NewAccountService creates a new account service.
func NewAccountService(repo AccountRepository, opts ...AccountServiceOption) *AccountService {
	s := &AccountService{
		repo:          repo,
		jwtIssuer:     "solvend",
		sessionExpiry: 24 * time.Hour,
		lookupTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SignupParams carries the signup form fields.
type SignupParams struct {
	Email       string
	Password    string
	ContactName string
	CompanyName string
	Country     string
	Role        Role
}

// Signup validates the params and creates the account record in a single
// idempotent step. The account starts unconfirmed; the verification workflow
// issues the confirmation token afterwards.
func (s *AccountService) Signup(ctx context.Context, params SignupParams) (Account, error) {
	if strings.TrimSpace(params.Email) == "" {
		return Account{}, fmt.Errorf("email is required")
	}
	if len(params.Password) < minPasswordLength {
		return Account{}, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	role := params.Role
	if role == "" {
		role = RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Failed to hash password", "err", err)
		return Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	acct, err := s.repo.Create(ctx, CreateAccountParams{
		Email:        params.Email,
		PasswordHash: string(hash),
		ContactName:  params.ContactName,
		CompanyName:  params.CompanyName,
		Country:      params.Country,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Account{}, ErrEmailTaken
		}
		slog.Error("Failed to create account", "email", params.Email, "err", err)
		return Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("Account created", "account_id", acct.ID, "email", acct.Email)
	return acct, nil
}

// SignIn verifies credentials and the confirmation gate, then issues a
// session token. Unconfirmed accounts are rejected even when the credentials
// are valid.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (Account, string, error) {
	acct, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Account{}, "", ErrInvalidCredentials
		}
		return Account{}, "", err
	}

	hash, err := s.repo.GetPasswordHash(ctx, acct.ID)
	if err != nil {
		return Account{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Account{}, "", ErrInvalidCredentials
	}

	if !acct.EmailConfirmed {
		return Account{}, "", ErrEmailNotConfirmed
	}

	tokenStr, err := s.createSessionToken(acct)
	if err != nil {
		slog.Error("Failed to sign session token", "account_id", acct.ID, "err", err)
		return Account{}, "", err
	}

	return acct, tokenStr, nil
}

// SignOut invalidates a session. Session tokens are stateless, so this only
// logs the event; the API layer clears the client cookie.
func (s *AccountService) SignOut(ctx context.Context, accountID uuid.UUID) {
	slog.Info("Account signed out", "account_id", accountID)
}

// UpdatePassword replaces the account credential with a new bcrypt hash.
func (s *AccountService) UpdatePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, id, string(hash)); err != nil {
		slog.Error("Failed to update password", "account_id", id, "err", err)
		return err
	}

	slog.Info("Password updated", "account_id", id)
	return nil
}

// GetAccount retrieves an account by id.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (Account, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves an account by email.
func (s *AccountService) GetByEmail(ctx context.Context, email string) (Account, error) {
	return s.repo.GetByEmail(ctx, email)
}

// CurrentAccount resolves a session token to its account. The lookup races
// a fixed timer; exceeding it is treated as failure rather than waiting
// indefinitely on the store.
func (s *AccountService) CurrentAccount(ctx context.Context, tokenStr string) (Account, error) {
	id, err := s.parseSessionToken(tokenStr)
	if err != nil {
		return Account{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Account{}, ErrLookupTimeout
		}
		return Account{}, err
	}
	return acct, nil
}

func (s *AccountService) createSessionToken(acct Account) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   acct.ID.String(),
		"email": acct.Email,
		"role":  string(acct.Role),
		"iss":   s.jwtIssuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.sessionExpiry).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(s.jwtSecret))
}

func (s *AccountService) parseSessionToken(tokenStr string) (uuid.UUID, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrInvalidCredentials
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return id, nil
}
