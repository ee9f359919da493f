package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ragbot/internal/models"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible chat completion
// API. A slow upstream model simply blocks the calling message until the
// client timeout fires; there is no streaming.
type OpenRouterProvider struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

func NewOpenRouterProvider(apiKey, baseURL, model string, maxTokens int) *OpenRouterProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &OpenRouterProvider{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: 45 * time.Second},
	}
}

func (o *OpenRouterProvider) Complete(ctx context.Context, messages []models.Message) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("openrouter key missing")
	}
	payload, _ := json.Marshal(map[string]any{
		"model":      o.model,
		"messages":   messages,
		"max_tokens": o.maxTokens,
	})
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(payload))
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openrouter completion request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("openrouter completion error %d: %s", resp.StatusCode, string(body))
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", ErrMalformedResponse)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned empty choices: %w", ErrMalformedResponse)
	}
	return parsed.Choices[0].Message.Content, nil
}
