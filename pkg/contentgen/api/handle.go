// Package api exposes the content-generation proxy over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/solvend/solvend/pkg/contentgen"
)

// GenerateRequest is the single entry-point body. Action selects the
// operation; the remaining fields are that action's payload.
type GenerateRequest struct {
	Action   string                   `json:"action"`
	Messages []contentgen.ChatMessage `json:"messages,omitempty"`
	Message  string                   `json:"message,omitempty"`
	Text     string                   `json:"text,omitempty"`
	Need     string                   `json:"need,omitempty"`
}

// GenerateResponse is the success envelope.
type GenerateResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type Handle struct {
	service *contentgen.GenerationService
}

func NewHandle(service *contentgen.GenerationService) Handle {
	return Handle{service: service}
}

func Routes(r chi.Router, h Handle) {
	r.Post("/api/generate", h.Generate)
}

// Generate dispatches on the action field. Every failure, including an
// unknown action, is reported in the error envelope with status 500 so the
// caller only has one failure shape to handle.
func (h Handle) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		slog.Error("Failed to decode generate request", "err", err)
		fail(w, r, "invalid request body")
		return
	}

	var (
		data any
		err  error
	)
	switch req.Action {
	case "chat":
		data, err = h.service.Chat(r.Context(), req.Messages)
	case "analyzeMessage":
		data, err = h.service.AnalyzeMessage(r.Context(), req.Message)
	case "generateSummary":
		data, err = h.service.GenerateSummary(r.Context(), req.Text)
	case "generateTags":
		data, err = h.service.GenerateTags(r.Context(), req.Text)
	case "generateRecommendation":
		data, err = h.service.GenerateRecommendation(r.Context(), req.Need)
	default:
		fail(w, r, "unknown action: "+req.Action)
		return
	}
	if err != nil {
		slog.Error("Content generation failed", "action", req.Action, "err", err)
		fail(w, r, err.Error())
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, GenerateResponse{Success: true, Data: data})
}

func fail(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, ErrorResponse{Success: false, Error: msg})
}
