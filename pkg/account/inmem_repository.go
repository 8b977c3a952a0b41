package account

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryAccountRepository implements AccountRepository using in-memory
// storage. Intended for tests and local development.
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]Account
	hashes   map[uuid.UUID]string
}

// NewInMemoryAccountRepository creates a new in-memory account repository.
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: make(map[uuid.UUID]Account),
		hashes:   make(map[uuid.UUID]string),
	}
}

// Create creates a new account.
func (r *InMemoryAccountRepository) Create(ctx context.Context, params CreateAccountParams) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(params.Email)
	for _, a := range r.accounts {
		if a.Email == email {
			return Account{}, ErrEmailTaken
		}
	}

	a := Account{
		ID:          uuid.New(),
		Email:       email,
		ContactName: params.ContactName,
		CompanyName: params.CompanyName,
		Country:     params.Country,
		Role:        params.Role,
		CreatedAt:   time.Now().UTC(),
	}

	r.accounts[a.ID] = a
	r.hashes[a.ID] = params.PasswordHash
	return a, nil
}

// GetByID gets an account by id.
func (r *InMemoryAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

// GetByEmail gets an account by email, case-insensitively.
func (r *InMemoryAccountRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// GetByPendingToken gets the account holding the given token of the given kind.
func (r *InMemoryAccountRepository) GetByPendingToken(ctx context.Context, kind PendingKind, tok string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Pending != nil && a.Pending.Kind == kind && a.Pending.Token == tok {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// SetPendingToken stores a pending token, overwriting any prior one.
func (r *InMemoryAccountRepository) SetPendingToken(ctx context.Context, id uuid.UUID, pending PendingToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.Pending = &pending
	r.accounts[id] = a
	return nil
}

// ClearPendingToken removes any pending token.
func (r *InMemoryAccountRepository) ClearPendingToken(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.Pending = nil
	r.accounts[id] = a
	return nil
}

// MarkEmailConfirmed sets the confirmed flag.
func (r *InMemoryAccountRepository) MarkEmailConfirmed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	a.EmailConfirmed = true
	r.accounts[id] = a
	return nil
}

// GetPasswordHash returns the stored credential hash.
func (r *InMemoryAccountRepository) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hash, ok := r.hashes[id]
	if !ok {
		return "", ErrAccountNotFound
	}
	return hash, nil
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *InMemoryAccountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	r.hashes[id] = hash
	return nil
}

// Count returns the number of registered accounts.
func (r *InMemoryAccountRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts), nil
}
