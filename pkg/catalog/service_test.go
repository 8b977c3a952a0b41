package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvend/solvend/pkg/translate"
)

func seedCatalog(t *testing.T, svc *CatalogService) {
	t.Helper()

	seeds := []CreateSolutionParams{
		{VendorName: "Acme", Name: "Acme CRM", Summary: "Customer tracking", Category: "crm", Country: "US", Tags: []string{"crm"}},
		{VendorName: "Globex", Name: "Globex Pay", Summary: "Payment rails", Category: "payments", Country: "DE"},
		{VendorName: "Initech", Name: "Initech Books", Summary: "Accounting for startups", Category: "finance", Country: "US"},
	}
	for _, p := range seeds {
		_, err := svc.Create(context.Background(), p)
		require.NoError(t, err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewCatalogService(NewInMemorySolutionRepository())

	_, err := svc.Create(context.Background(), CreateSolutionParams{Name: "  ", VendorName: "Acme"})
	assert.ErrorIs(t, err, ErrInvalidSolution)

	_, err = svc.Create(context.Background(), CreateSolutionParams{Name: "Thing", VendorName: ""})
	assert.ErrorIs(t, err, ErrInvalidSolution)
}

func TestCreateAndGet(t *testing.T) {
	svc := NewCatalogService(NewInMemorySolutionRepository())

	created, err := svc.Create(context.Background(), CreateSolutionParams{
		VendorName: "Acme", Name: "Acme CRM", Tags: []string{"crm", "sales"},
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme CRM", got.Name)
	assert.Equal(t, []string{"crm", "sales"}, got.Tags)
}

func TestSearchFilters(t *testing.T) {
	svc := NewCatalogService(NewInMemorySolutionRepository())
	seedCatalog(t, svc)

	byCategory, err := svc.Search(context.Background(), SearchParams{Category: "crm"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Acme CRM", byCategory[0].Name)

	byCountry, err := svc.Search(context.Background(), SearchParams{Country: "US"})
	require.NoError(t, err)
	assert.Len(t, byCountry, 2)

	byText, err := svc.Search(context.Background(), SearchParams{Query: "accounting"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "Initech Books", byText[0].Name)

	combined, err := svc.Search(context.Background(), SearchParams{Country: "US", Query: "crm"})
	require.NoError(t, err)
	assert.Len(t, combined, 1)
}

type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return fmt.Sprintf("%s:%s", target, text), nil
}

func TestListLocalized(t *testing.T) {
	translations := translate.NewTranslationService(echoTranslator{}, translate.NewCache())
	svc := NewCatalogService(NewInMemorySolutionRepository(), WithTranslations(translations))
	seedCatalog(t, svc)

	localized, err := svc.ListLocalized(context.Background(), "ar")
	require.NoError(t, err)
	require.Len(t, localized, 3)
	for _, sol := range localized {
		assert.Contains(t, sol.Name, "ar:")
		assert.Contains(t, sol.Summary, "ar:")
		// Vendor names are not translated.
		assert.NotContains(t, sol.VendorName, "ar:")
	}
}

func TestListLocalizedWithoutTranslationsServesOriginals(t *testing.T) {
	svc := NewCatalogService(NewInMemorySolutionRepository())
	seedCatalog(t, svc)

	got, err := svc.ListLocalized(context.Background(), "ar")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Customer tracking", findByName(t, got, "Acme CRM").Summary)
}

func findByName(t *testing.T, solutions []Solution, name string) Solution {
	t.Helper()
	for _, s := range solutions {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("solution %q not found", name)
	return Solution{}
}
