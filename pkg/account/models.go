package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the directory role assigned to an account.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleEvaluator Role = "evaluator"
)

// ParseRole maps a string to a known Role, defaulting to RoleUser for the
// empty string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin, RoleEvaluator:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// PendingKind tags which flow a pending token belongs to.
type PendingKind string

const (
	PendingConfirmation PendingKind = "confirmation"
	PendingReset        PendingKind = "reset"
)

// PendingToken is the single outstanding verification token on an account.
// An account holds at most one; issuing a new token of either kind replaces
// any prior one.
type PendingToken struct {
	Kind     PendingKind
	Token    string
	IssuedAt time.Time
}

// Account is a registered user/organization record in the directory.
type Account struct {
	ID             uuid.UUID
	Email          string
	ContactName    string
	CompanyName    string
	Country        string
	Role           Role
	EmailConfirmed bool
	Pending        *PendingToken
	CreatedAt      time.Time
}

// CreateAccountParams carries the fields needed to create an account.
type CreateAccountParams struct {
	Email        string
	PasswordHash string
	ContactName  string
	CompanyName  string
	Country      string
	Role         Role
}
