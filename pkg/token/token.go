// Package token generates and validates the opaque verification tokens used
// by the email confirmation and password reset flows.
package token

import (
	"crypto/rand"
	"log/slog"
	mathrand "math/rand"
	"regexp"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the length of tokens issued by the verification workflow.
const DefaultLength = 32

// Accepted length range on validation. Tokens outside this range are
// rejected before any storage lookup.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9]{16,128}$`)

// Generate returns a random token of the given length drawn from the
// 62-symbol alphanumeric alphabet. It prefers crypto/rand and falls back to
// math/rand if the system source is unavailable. No uniqueness check is
// performed against existing tokens.
func Generate(length int) string {
	if length <= 0 {
		length = DefaultLength
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		slog.Warn("crypto/rand unavailable, falling back to math/rand", "err", err)
		for i := range buf {
			buf[i] = alphabet[mathrand.Intn(len(alphabet))]
		}
		return string(buf)
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}

// Validate reports whether token looks like a token this package could have
// issued: 16 to 128 alphanumeric characters. It checks format only, not
// existence, ownership or expiry; callers must check those against storage.
func Validate(token string) bool {
	return tokenPattern.MatchString(token)
}
