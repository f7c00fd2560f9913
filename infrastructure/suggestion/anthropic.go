// Package suggestion provides the LLM-backed suggestion provider used to
// enrich temporary bookmarks.
package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"markbase-backend/pkg/errors"

	"go.uber.org/zap"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"
	maxTokens         = 1024
	maxAttempts       = 3
)

// AnthropicProvider implements ports.SuggestionProvider against the
// Anthropic Messages API.
type AnthropicProvider struct {
	httpClient *http.Client
	apiKey     string
	model      string
	logger     *zap.Logger
}

// NewAnthropicProvider creates a provider for the given API key and model.
func NewAnthropicProvider(apiKey, model string, logger *zap.Logger) *AnthropicProvider {
	return &AnthropicProvider{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Suggest sends the prompt and returns the model's raw text response.
// Transient failures (5xx, 429, network errors) are retried with backoff.
func (p *AnthropicProvider) Suggest(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", errors.NewExternalError("suggestion", fmt.Errorf("missing API key"))
	}

	body, err := json.Marshal(messagesRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal suggestion request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * 2 * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, retryable, err := p.call(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		p.logger.Warn("Suggestion request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	return "", errors.NewExternalError("suggestion", lastErr)
}

func (p *AnthropicProvider) call(ctx context.Context, body []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("messages API returned %d: %s", resp.StatusCode, string(raw))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, fmt.Errorf("failed to decode messages response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("messages API error: %s", parsed.Error.Message)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, false, nil
		}
	}
	return "", false, fmt.Errorf("messages response contained no text content")
}
