package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// OpenAIEmbeddingProvider uses the standard OpenAI embeddings API when a key
// is configured.
type OpenAIEmbeddingProvider struct {
	keyName string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenAIEmbeddingProvider(keyName string) *OpenAIEmbeddingProvider {
	return &OpenAIEmbeddingProvider{
		keyName: keyName,
		apiKey:  resolveOpenAIKey(keyName),
		model:   "text-embedding-3-small",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OpenAIEmbeddingProvider) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("openai key missing for alias %q", o.keyName)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no embedding inputs")
	}
	payload, _ := json.Marshal(map[string]any{"model": o.model, "input": inputs})
	httpReq, _ := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.openai.com/v1/embeddings", bytes.NewReader(payload))
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("openai embedding error %d: %s", resp.StatusCode, string(body))
	}
	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", ErrMalformedResponse)
	}
	if len(parsed.Data) != len(inputs) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs: %w", len(parsed.Data), len(inputs), ErrMalformedResponse)
	}
	out := make([][]float32, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		out = append(out, d.Embedding)
	}
	return out, nil
}

func resolveOpenAIKey(alias string) string {
	if alias != "" {
		k := os.Getenv("RAGBOT_OPENAI_KEY_" + strings.ToUpper(alias))
		if k != "" {
			return k
		}
	}
	return os.Getenv("OPENAI_API_KEY")
}
