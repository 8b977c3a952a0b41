// Package catalog manages the solution directory: the records vendors publish
// and buyers browse.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Solution is one published directory entry.
type Solution struct {
	ID         uuid.UUID
	VendorName string
	Name       string
	Summary    string
	Category   string
	Country    string
	Tags       []string
	CreatedAt  time.Time
}

// CreateSolutionParams carries the fields needed to publish a solution.
type CreateSolutionParams struct {
	VendorName string
	Name       string
	Summary    string
	Category   string
	Country    string
	Tags       []string
}

// SearchParams filters a catalog listing. Empty fields match everything.
type SearchParams struct {
	Category string
	Country  string
	Query    string
}
