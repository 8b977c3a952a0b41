// Package insights computes read-only market statistics over the catalog and
// the registered accounts.
package insights

import (
	"context"
	"fmt"
	"sort"

	"github.com/solvend/solvend/pkg/catalog"
)

// AccountCounter reports how many accounts are registered. The account
// repositories satisfy it.
type AccountCounter interface {
	Count(ctx context.Context) (int, error)
}

// Overview is the aggregate snapshot served to dashboards.
type Overview struct {
	TotalSolutions int                `json:"totalSolutions"`
	TotalAccounts  int                `json:"totalAccounts"`
	ByCategory     []CategoryCount    `json:"byCategory"`
	ByCountry      []CountryCount     `json:"byCountry"`
	Newest         []catalog.Solution `json:"newest"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// newestLimit caps the recent-solutions list in the overview.
const newestLimit = 5

// InsightsService aggregates catalog and account data.
type InsightsService struct {
	solutions catalog.SolutionRepository
	accounts  AccountCounter
}

func NewInsightsService(solutions catalog.SolutionRepository, accounts AccountCounter) *InsightsService {
	return &InsightsService{solutions: solutions, accounts: accounts}
}

// Overview computes the full snapshot. Counts are grouped in memory from one
// listing query; groups are sorted by descending count, ties by name, so the
// output is stable.
func (s *InsightsService) Overview(ctx context.Context) (Overview, error) {
	solutions, err := s.solutions.List(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to list solutions: %w", err)
	}

	accounts, err := s.accounts.Count(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to count accounts: %w", err)
	}

	byCategory := make(map[string]int)
	byCountry := make(map[string]int)
	for _, sol := range solutions {
		if sol.Category != "" {
			byCategory[sol.Category]++
		}
		if sol.Country != "" {
			byCountry[sol.Country]++
		}
	}

	newest := solutions
	if len(newest) > newestLimit {
		newest = newest[:newestLimit]
	}

	return Overview{
		TotalSolutions: len(solutions),
		TotalAccounts:  accounts,
		ByCategory:     sortedCategories(byCategory),
		ByCountry:      sortedCountries(byCountry),
		Newest:         newest,
	}, nil
}

func sortedCategories(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, CategoryCount{Category: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func sortedCountries(counts map[string]int) []CountryCount {
	out := make([]CountryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, CountryCount{Country: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Country < out[j].Country
	})
	return out
}
