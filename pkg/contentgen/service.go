package contentgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// GenerationService builds prompts per action and forwards them to the
// completion backend.
type GenerationService struct {
	llm ChatCompleter
}

// NewGenerationService creates a content-generation service.
func NewGenerationService(llm ChatCompleter) *GenerationService {
	return &GenerationService{llm: llm}
}

// Chat forwards a free-form conversation and returns the reply verbatim.
func (s *GenerationService) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("chat requires at least one message")
	}
	return s.llm.Complete(ctx, messages)
}

// AnalyzeMessage classifies an inbound vendor inquiry. The model must reply
// with JSON; a reply that cannot be parsed is surfaced as an error because
// downstream routing depends on the analysis.
func (s *GenerationService) AnalyzeMessage(ctx context.Context, message string) (map[string]any, error) {
	reply, err := s.llm.Complete(ctx, []ChatMessage{
		{Role: "system", Content: "You analyze inquiries sent to solution vendors. " +
			"Reply with a JSON object containing the keys \"intent\", \"category\" and \"urgency\". " +
			"Reply with JSON only, no explanation."},
		{Role: "user", Content: message},
	})
	if err != nil {
		return nil, err
	}

	var analysis map[string]any
	if err := json.Unmarshal([]byte(SanitizeJSON(reply)), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse message analysis: %w", err)
	}
	return analysis, nil
}

// GenerateSummary produces a short plain-text summary of a solution
// description.
func (s *GenerationService) GenerateSummary(ctx context.Context, text string) (string, error) {
	reply, err := s.llm.Complete(ctx, []ChatMessage{
		{Role: "system", Content: "Summarize the following solution description in two sentences of plain text."},
		{Role: "user", Content: text},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// GenerateTags suggests tags for a solution. Tagging is best-effort: a reply
// that cannot be parsed degrades to an empty list instead of an error.
func (s *GenerationService) GenerateTags(ctx context.Context, text string) ([]string, error) {
	reply, err := s.llm.Complete(ctx, []ChatMessage{
		{Role: "system", Content: "Suggest up to 5 short lowercase tags for the following solution. " +
			"Reply with a JSON array of strings only."},
		{Role: "user", Content: text},
	})
	if err != nil {
		return nil, err
	}

	var tags []string
	if err := json.Unmarshal([]byte(SanitizeJSON(reply)), &tags); err != nil {
		slog.Warn("Tag reply was not valid JSON, returning no tags", "err", err)
		return []string{}, nil
	}
	return tags, nil
}

// GenerateRecommendation matches a buyer need against the catalog framing.
// Like tagging it is best-effort: an unparseable reply degrades to an empty
// object.
func (s *GenerationService) GenerateRecommendation(ctx context.Context, need string) (map[string]any, error) {
	reply, err := s.llm.Complete(ctx, []ChatMessage{
		{Role: "system", Content: "You recommend solution categories for a stated business need. " +
			"Reply with a JSON object containing the keys \"category\" and \"reason\". " +
			"Reply with JSON only."},
		{Role: "user", Content: need},
	})
	if err != nil {
		return nil, err
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(SanitizeJSON(reply)), &rec); err != nil {
		slog.Warn("Recommendation reply was not valid JSON, returning empty object", "err", err)
		return map[string]any{}, nil
	}
	return rec, nil
}
