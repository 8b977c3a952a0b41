package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/solvend/solvend/pkg/translate"
)

// CatalogService wraps the repository with validation and localization.
type CatalogService struct {
	repo         SolutionRepository
	translations *translate.TranslationService
}

type Option func(*CatalogService)

// WithTranslations enables localized listings.
func WithTranslations(t *translate.TranslationService) Option {
	return func(s *CatalogService) {
		s.translations = t
	}
}

func NewCatalogService(repo SolutionRepository, opts ...Option) *CatalogService {
	s := &CatalogService{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create publishes a solution.
func (s *CatalogService) Create(ctx context.Context, params CreateSolutionParams) (Solution, error) {
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.VendorName) == "" {
		return Solution{}, ErrInvalidSolution
	}

	sol, err := s.repo.Create(ctx, params)
	if err != nil {
		return Solution{}, fmt.Errorf("failed to create solution: %w", err)
	}
	return sol, nil
}

// Get retrieves one solution.
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (Solution, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all solutions, newest first.
func (s *CatalogService) List(ctx context.Context) ([]Solution, error) {
	return s.repo.List(ctx)
}

// Search filters the catalog.
func (s *CatalogService) Search(ctx context.Context, params SearchParams) ([]Solution, error) {
	return s.repo.Search(ctx, params)
}

// ListLocalized lists solutions with name and summary translated into lang.
// Localization is best-effort: without a translation service, or when
// individual translations fail, the original text is served.
func (s *CatalogService) ListLocalized(ctx context.Context, lang string) ([]Solution, error) {
	solutions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.translations == nil || lang == "" {
		return solutions, nil
	}

	items := make([]translate.SolutionText, len(solutions))
	for i, sol := range solutions {
		items[i] = translate.SolutionText{Name: sol.Name, Summary: sol.Summary}
	}

	translated := s.translations.TranslateSolutions(ctx, items, lang, "auto")
	for i := range solutions {
		solutions[i].Name = translated[i].Name
		solutions[i].Summary = translated[i].Summary
	}
	return solutions, nil
}
