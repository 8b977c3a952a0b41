package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemorySolutionRepository implements SolutionRepository with maps, for
// tests and local development.
type InMemorySolutionRepository struct {
	mu        sync.RWMutex
	solutions map[uuid.UUID]Solution
}

func NewInMemorySolutionRepository() *InMemorySolutionRepository {
	return &InMemorySolutionRepository{solutions: make(map[uuid.UUID]Solution)}
}

func (r *InMemorySolutionRepository) Create(ctx context.Context, params CreateSolutionParams) (Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Solution{
		ID:         uuid.New(),
		VendorName: params.VendorName,
		Name:       params.Name,
		Summary:    params.Summary,
		Category:   params.Category,
		Country:    params.Country,
		Tags:       append([]string(nil), params.Tags...),
		CreatedAt:  time.Now().UTC(),
	}
	r.solutions[s.ID] = s
	return s, nil
}

func (r *InMemorySolutionRepository) GetByID(ctx context.Context, id uuid.UUID) (Solution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.solutions[id]
	if !ok {
		return Solution{}, ErrSolutionNotFound
	}
	return s, nil
}

func (r *InMemorySolutionRepository) List(ctx context.Context) ([]Solution, error) {
	return r.Search(ctx, SearchParams{})
}

func (r *InMemorySolutionRepository) Search(ctx context.Context, params SearchParams) ([]Solution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(params.Query)
	var out []Solution
	for _, s := range r.solutions {
		if params.Category != "" && s.Category != params.Category {
			continue
		}
		if params.Country != "" && s.Country != params.Country {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Summary), q) &&
			!strings.Contains(strings.ToLower(s.VendorName), q) {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
