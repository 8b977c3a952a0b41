package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solvend/solvend/pkg/catalog"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	h := NewHandle(catalog.NewCatalogService(catalog.NewInMemorySolutionRepository()))
	r := chi.NewRouter()
	// Tests mount the mutation routes unprotected.
	Routes(r, r, h)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func createSolution(t *testing.T, url string, params SolutionParams) SolutionResponse {
	t.Helper()

	data, err := json.Marshal(params)
	require.NoError(t, err)
	resp, err := http.Post(url+"/api/solutions", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out SolutionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateAndGetSolution(t *testing.T) {
	srv := setupServer(t)

	created := createSolution(t, srv.URL, SolutionParams{
		VendorName: "Acme",
		Name:       "Acme CRM",
		Summary:    "Customer tracking",
		Category:   "crm",
		Country:    "US",
		Tags:       []string{"crm", "sales"},
	})
	assert.NotEqual(t, uuid.Nil, created.ID)

	resp, err := http.Get(srv.URL + "/api/solutions/" + created.ID.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got SolutionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{"crm", "sales"}, got.Tags)
}

func TestCreateSolutionValidation(t *testing.T) {
	srv := setupServer(t)

	data, _ := json.Marshal(SolutionParams{Name: "No Vendor"})
	resp, err := http.Post(srv.URL+"/api/solutions", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSolutionNotFound(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/solutions/" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/solutions/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListSolutionsWithFilters(t *testing.T) {
	srv := setupServer(t)

	createSolution(t, srv.URL, SolutionParams{VendorName: "Acme", Name: "Acme CRM", Category: "crm", Country: "US"})
	createSolution(t, srv.URL, SolutionParams{VendorName: "Globex", Name: "Globex Pay", Category: "payments", Country: "DE"})

	resp, err := http.Get(srv.URL + "/api/solutions?category=crm")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []SolutionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Acme CRM", got[0].Name)

	resp, err = http.Get(srv.URL + "/api/solutions?q=pay")
	require.NoError(t, err)
	defer resp.Body.Close()

	got = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Globex Pay", got[0].Name)
}
