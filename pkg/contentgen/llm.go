// Package contentgen proxies content-generation requests to an external
// chat-completion endpoint. Callers send an action plus payload; the service
// builds the prompt, forwards it, and normalizes the model's reply.
package contentgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ChatMessage is a single turn in a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompleter produces one completion for a list of messages.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// LLMClient calls an OpenAI-compatible chat-completion endpoint.
type LLMClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewLLMClient creates a chat-completion client. endpoint is the full
// completions URL.
func NewLLMClient(endpoint, apiKey, model string) *LLMClient {
	return &LLMClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		httpClient: http.DefaultClient,
	}
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete posts the messages and returns the first choice's content.
func (c *LLMClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	body, err := json.Marshal(completionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("completion endpoint: %s", out.Error.Message)
		}
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return out.Choices[0].Message.Content, nil
}
