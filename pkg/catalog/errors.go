package catalog

import "errors"

var (
	ErrSolutionNotFound = errors.New("solution not found")
	ErrInvalidSolution  = errors.New("solution name and vendor are required")
)
