package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository defines the storage operations the account and
// verification services need.
type AccountRepository interface {
	Create(ctx context.Context, params CreateAccountParams) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByPendingToken(ctx context.Context, kind PendingKind, token string) (Account, error)

	SetPendingToken(ctx context.Context, id uuid.UUID, pending PendingToken) error
	ClearPendingToken(ctx context.Context, id uuid.UUID) error
	MarkEmailConfirmed(ctx context.Context, id uuid.UUID) error

	GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// PostgresAccountRepository implements AccountRepository on pgx.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new Postgres-backed repository.
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

const accountColumns = `id, email, contact_name, company_name, country, role,
	email_confirmed, pending_token_kind, pending_token, token_issued_at, created_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	var role string
	var kind, tok *string
	var issuedAt *time.Time

	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.ContactName,
		&a.CompanyName,
		&a.Country,
		&role,
		&a.EmailConfirmed,
		&kind,
		&tok,
		&issuedAt,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}

	a.Role = Role(role)
	if kind != nil && tok != nil && issuedAt != nil {
		a.Pending = &PendingToken{
			Kind:     PendingKind(*kind),
			Token:    *tok,
			IssuedAt: *issuedAt,
		}
	}
	return a, nil
}

// Create inserts a new account. Emails are stored lower-cased so lookups are
// case-insensitive.
func (r *PostgresAccountRepository) Create(ctx context.Context, params CreateAccountParams) (Account, error) {
	query := `
		INSERT INTO accounts (email, password_hash, contact_name, company_name, country, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + accountColumns

	row := r.db.QueryRow(ctx, query,
		strings.ToLower(params.Email),
		params.PasswordHash,
		params.ContactName,
		params.CompanyName,
		params.Country,
		string(params.Role),
	)
	a, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}
	return a, nil
}

// GetByID retrieves an account by id.
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = LOWER($1)`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

// GetByPendingToken retrieves the account holding the given token of the
// given kind. An exact match is required.
func (r *PostgresAccountRepository) GetByPendingToken(ctx context.Context, kind PendingKind, tok string) (Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
		WHERE pending_token_kind = $1 AND pending_token = $2`
	return scanAccount(r.db.QueryRow(ctx, query, string(kind), tok))
}

// SetPendingToken stores a pending token, overwriting any prior one of
// either kind. Last writer wins.
func (r *PostgresAccountRepository) SetPendingToken(ctx context.Context, id uuid.UUID, pending PendingToken) error {
	query := `
		UPDATE accounts
		SET pending_token_kind = $2, pending_token = $3, token_issued_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, string(pending.Kind), pending.Token, pending.IssuedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ClearPendingToken nulls out the pending token columns.
func (r *PostgresAccountRepository) ClearPendingToken(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE accounts
		SET pending_token_kind = NULL, pending_token = NULL, token_issued_at = NULL
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// MarkEmailConfirmed sets the confirmed flag.
func (r *PostgresAccountRepository) MarkEmailConfirmed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accounts SET email_confirmed = TRUE WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// GetPasswordHash returns the stored credential hash for an account.
func (r *PostgresAccountRepository) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx, `SELECT password_hash FROM accounts WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAccountNotFound
		}
		return "", err
	}
	return hash, nil
}

// UpdatePasswordHash replaces the stored credential hash.
func (r *PostgresAccountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Count returns the number of registered accounts.
func (r *PostgresAccountRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n)
	return n, err
}
