package account

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithInitScripts(filepath.Join("../../migrations", "solvend_db.sql")),
		postgres.WithDatabase("solvend_db"),
		postgres.WithUsername("solvend"),
		postgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	connString, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return pool
}

func TestPostgresAccountRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	repo := NewPostgresAccountRepository(setupTestDatabase(t))

	created, err := repo.Create(ctx, CreateAccountParams{
		Email:        "Vendor@Example.com",
		PasswordHash: "hash-1",
		ContactName:  "Pat",
		CompanyName:  "Acme",
		Country:      "US",
		Role:         RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "vendor@example.com", created.Email)
	assert.False(t, created.EmailConfirmed)
	assert.Nil(t, created.Pending)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, CreateAccountParams{
			Email:        "VENDOR@example.com",
			PasswordHash: "hash-2",
			Role:         RoleUser,
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("lookups", func(t *testing.T) {
		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, byID.Email)

		byEmail, err := repo.GetByEmail(ctx, "VENDOR@EXAMPLE.COM")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
	})

	t.Run("pending token lifecycle", func(t *testing.T) {
		issued := time.Now().UTC().Truncate(time.Second)
		err := repo.SetPendingToken(ctx, created.ID, PendingToken{
			Kind:     PendingConfirmation,
			Token:    "ConfirmTok1234567890123456789012",
			IssuedAt: issued,
		})
		require.NoError(t, err)

		got, err := repo.GetByPendingToken(ctx, PendingConfirmation, "ConfirmTok1234567890123456789012")
		require.NoError(t, err)
		require.NotNil(t, got.Pending)
		assert.Equal(t, PendingConfirmation, got.Pending.Kind)

		// The wrong kind does not match.
		_, err = repo.GetByPendingToken(ctx, PendingReset, "ConfirmTok1234567890123456789012")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		// Overwriting with a reset token invalidates the confirmation token.
		err = repo.SetPendingToken(ctx, created.ID, PendingToken{
			Kind:     PendingReset,
			Token:    "ResetTok123456789012345678901234",
			IssuedAt: issued,
		})
		require.NoError(t, err)

		_, err = repo.GetByPendingToken(ctx, PendingConfirmation, "ConfirmTok1234567890123456789012")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		require.NoError(t, repo.ClearPendingToken(ctx, created.ID))
		cleared, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, cleared.Pending)
	})

	t.Run("confirm and credentials", func(t *testing.T) {
		require.NoError(t, repo.MarkEmailConfirmed(ctx, created.ID))
		confirmed, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, confirmed.EmailConfirmed)

		hash, err := repo.GetPasswordHash(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash-1", hash)

		require.NoError(t, repo.UpdatePasswordHash(ctx, created.ID, "hash-3"))
		hash, err = repo.GetPasswordHash(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash-3", hash)
	})

	t.Run("count", func(t *testing.T) {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
