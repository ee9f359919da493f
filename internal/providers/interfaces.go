package providers

import (
	"context"

	"ragbot/internal/models"
)

// ChatProvider produces a completion for an ordered list of chat messages.
type ChatProvider interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// EmbeddingProvider converts texts into vectors for similarity search.
type EmbeddingProvider interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}
