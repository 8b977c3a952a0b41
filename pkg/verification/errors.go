package verification

import "errors"

var (
	// ErrTokenInvalid is returned when a token is malformed or does not
	// match any outstanding token.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrTokenExpired is returned when a reset token is older than the
	// reset window. Kept distinct from ErrTokenInvalid so the UI can show
	// a different message.
	ErrTokenExpired = errors.New("reset token has expired, please request a new one")
)
