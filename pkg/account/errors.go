package account

import "errors"

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken is returned when signing up with an email that already
	// has an account.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotConfirmed is returned by SignIn when the account's email
	// has not been confirmed yet, even if the credentials are valid.
	ErrEmailNotConfirmed = errors.New("please confirm your email before signing in")

	// ErrLookupTimeout is returned when the current-account lookup exceeds
	// its deadline.
	ErrLookupTimeout = errors.New("account lookup timed out")
)
