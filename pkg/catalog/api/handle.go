// Package api exposes the solution catalog over HTTP.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ggicci/httpin"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/solvend/solvend/pkg/catalog"
)

// SolutionParams is the create-solution request body.
type SolutionParams struct {
	VendorName string   `json:"vendorName"`
	Name       string   `json:"name"`
	Summary    string   `json:"summary"`
	Category   string   `json:"category"`
	Country    string   `json:"country"`
	Tags       []string `json:"tags"`
}

// CreateSolutionInput binds the create request.
type CreateSolutionInput struct {
	Payload *SolutionParams `in:"body=json"`
}

// ListSolutionsInput binds the listing filters from the query string.
type ListSolutionsInput struct {
	Category string `in:"query=category"`
	Country  string `in:"query=country"`
	Query    string `in:"query=q"`
	Lang     string `in:"query=lang"`
}

// SolutionResponse is the wire shape of one solution.
type SolutionResponse struct {
	ID         uuid.UUID `json:"id"`
	VendorName string    `json:"vendorName"`
	Name       string    `json:"name"`
	Summary    string    `json:"summary"`
	Category   string    `json:"category"`
	Country    string    `json:"country"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Handle struct {
	service *catalog.CatalogService
}

func NewHandle(service *catalog.CatalogService) Handle {
	return Handle{service: service}
}

// Routes mounts the public read routes on r and the mutation routes on
// protected, which the caller wraps with its auth middleware.
func Routes(r chi.Router, protected chi.Router, h Handle) {
	r.With(httpin.NewInput(ListSolutionsInput{})).Get("/api/solutions", h.ListSolutions)
	r.Get("/api/solutions/{id}", h.GetSolution)

	protected.With(httpin.NewInput(CreateSolutionInput{})).Post("/api/solutions", h.CreateSolution)
}

func (h Handle) CreateSolution(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*CreateSolutionInput)

	params := catalog.CreateSolutionParams{}
	copier.Copy(&params, input.Payload)

	sol, err := h.service.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidSolution) {
			render.Status(r, http.StatusBadRequest)
			render.PlainText(w, r, err.Error())
			return
		}
		slog.Error("Failed to create solution", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to create solution")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toResponse(sol))
}

func (h Handle) GetSolution(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, "invalid solution id")
		return
	}

	sol, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrSolutionNotFound) {
			render.Status(r, http.StatusNotFound)
			render.PlainText(w, r, err.Error())
			return
		}
		slog.Error("Failed to get solution", "id", id, "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to get solution")
		return
	}

	render.JSON(w, r, toResponse(sol))
}

// ListSolutions serves both the plain listing and filtered search. A lang
// parameter switches to the localized listing; filters and localization are
// mutually exclusive since the localized path serves the whole catalog.
func (h Handle) ListSolutions(w http.ResponseWriter, r *http.Request) {
	input := r.Context().Value(httpin.Input).(*ListSolutionsInput)

	var (
		solutions []catalog.Solution
		err       error
	)
	if input.Lang != "" {
		solutions, err = h.service.ListLocalized(r.Context(), input.Lang)
	} else {
		solutions, err = h.service.Search(r.Context(), catalog.SearchParams{
			Category: input.Category,
			Country:  input.Country,
			Query:    input.Query,
		})
	}
	if err != nil {
		slog.Error("Failed to list solutions", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to list solutions")
		return
	}

	out := make([]SolutionResponse, len(solutions))
	for i, sol := range solutions {
		out[i] = toResponse(sol)
	}
	render.JSON(w, r, out)
}

func toResponse(sol catalog.Solution) SolutionResponse {
	resp := SolutionResponse{}
	copier.Copy(&resp, &sol)
	return resp
}
