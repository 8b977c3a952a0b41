package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SolutionRepository defines the storage operations of the catalog.
type SolutionRepository interface {
	Create(ctx context.Context, params CreateSolutionParams) (Solution, error)
	GetByID(ctx context.Context, id uuid.UUID) (Solution, error)
	List(ctx context.Context) ([]Solution, error)
	Search(ctx context.Context, params SearchParams) ([]Solution, error)
}

// PostgresSolutionRepository implements SolutionRepository on pgx.
type PostgresSolutionRepository struct {
	db *pgxpool.Pool
}

// NewPostgresSolutionRepository creates a new Postgres-backed repository.
func NewPostgresSolutionRepository(db *pgxpool.Pool) *PostgresSolutionRepository {
	return &PostgresSolutionRepository{db: db}
}

const solutionColumns = `id, vendor_name, name, summary, category, country, tags, created_at`

func scanSolution(row pgx.Row) (Solution, error) {
	var s Solution
	err := row.Scan(
		&s.ID,
		&s.VendorName,
		&s.Name,
		&s.Summary,
		&s.Category,
		&s.Country,
		&s.Tags,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Solution{}, ErrSolutionNotFound
		}
		return Solution{}, err
	}
	return s, nil
}

func collectSolutions(rows pgx.Rows) ([]Solution, error) {
	defer rows.Close()

	var solutions []Solution
	for rows.Next() {
		s, err := scanSolution(rows)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, s)
	}
	return solutions, rows.Err()
}

// Create inserts a new solution.
func (r *PostgresSolutionRepository) Create(ctx context.Context, params CreateSolutionParams) (Solution, error) {
	query := `
		INSERT INTO solutions (vendor_name, name, summary, category, country, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + solutionColumns

	row := r.db.QueryRow(ctx, query,
		params.VendorName,
		params.Name,
		params.Summary,
		params.Category,
		params.Country,
		params.Tags,
	)
	return scanSolution(row)
}

// GetByID retrieves a solution by id.
func (r *PostgresSolutionRepository) GetByID(ctx context.Context, id uuid.UUID) (Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions WHERE id = $1`
	return scanSolution(r.db.QueryRow(ctx, query, id))
}

// List returns all solutions, newest first.
func (r *PostgresSolutionRepository) List(ctx context.Context) ([]Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectSolutions(rows)
}

// Search filters by category, country and a free-text query over name,
// summary and vendor. Filters are ANDed; empty filters are skipped.
func (r *PostgresSolutionRepository) Search(ctx context.Context, params SearchParams) ([]Solution, error) {
	query := `SELECT ` + solutionColumns + ` FROM solutions WHERE 1=1`
	var args []any

	if params.Category != "" {
		args = append(args, params.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if params.Country != "" {
		args = append(args, params.Country)
		query += fmt.Sprintf(" AND country = $%d", len(args))
	}
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (name ILIKE $%d OR summary ILIKE $%d OR vendor_name ILIKE $%d)", n, n, n)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectSolutions(rows)
}
