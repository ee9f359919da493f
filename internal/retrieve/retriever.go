// Package retrieve answers "which indexed chunks are closest to this query".
package retrieve

import (
	"context"
	"fmt"
	"strings"

	"ragbot/internal/models"
	"ragbot/internal/providers"
)

// VectorSearcher is the read side of the vector store.
type VectorSearcher interface {
	Search(ctx context.Context, queryVec []float32, k int) ([]models.SearchResult, error)
}

type Retriever struct {
	embedder providers.EmbeddingProvider
	store    VectorSearcher
	topK     int
}

func New(embedder providers.EmbeddingProvider, store VectorSearcher, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve returns the text of the topK most similar chunks, best match
// first. An empty query short-circuits without calling the embedder or the
// store. There is no relevance threshold: a non-empty store always yields up
// to topK results.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}
	results, err := r.store.Search(ctx, vectors[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.Text)
	}
	return texts, nil
}
