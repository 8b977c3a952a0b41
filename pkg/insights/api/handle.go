// Package api exposes the market-insights snapshot over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/solvend/solvend/pkg/insights"
)

type Handle struct {
	service *insights.InsightsService
}

func NewHandle(service *insights.InsightsService) Handle {
	return Handle{service: service}
}

func Routes(r chi.Router, h Handle) {
	r.Get("/api/insights", h.Overview)
}

func (h Handle) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		slog.Error("Failed to compute insights overview", "err", err)
		render.Status(r, http.StatusInternalServerError)
		render.PlainText(w, r, "failed to compute insights")
		return
	}
	render.JSON(w, r, overview)
}
