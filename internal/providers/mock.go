package providers

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"ragbot/internal/models"
)

// MockProvider is a deterministic stand-in for both the chat and embedding
// APIs. It keeps the bot and the indexer runnable without any credentials.
type MockProvider struct {
	dim int
}

func NewMockProvider(dim int) *MockProvider {
	if dim <= 0 {
		dim = 768
	}
	return &MockProvider{dim: dim}
}

func (m *MockProvider) Complete(ctx context.Context, messages []models.Message) (string, error) {
	_ = ctx
	last := ""
	for _, msg := range messages {
		if msg.Role == "user" {
			last = msg.Content
		}
	}
	b := strings.Builder{}
	b.WriteString("### Mock answer\n")
	b.WriteString("Deterministic mock output; configure a real provider for semantic quality.")
	if last != "" {
		sum := sha256.Sum256([]byte(last))
		b.WriteString("\n* query digest: ")
		b.WriteString(hex.EncodeToString(sum[:8]))
	}
	return b.String(), nil
}

func (m *MockProvider) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	_ = ctx
	vectors := make([][]float32, 0, len(inputs))
	for _, input := range inputs {
		vectors = append(vectors, deterministicVector(input, m.dim))
	}
	return vectors, nil
}

func deterministicVector(input string, dim int) []float32 {
	vec := make([]float32, dim)
	seed := []byte(input)
	if len(seed) == 0 {
		seed = []byte("empty")
	}
	for i := 0; i < dim; i++ {
		h := sha256.Sum256(append(seed, byte(i%251)))
		u := binary.BigEndian.Uint32(h[:4])
		v := float32(u%2000)/1000.0 - 1.0
		vec[i] = v
	}
	return normalize(vec)
}

func normalize(v []float32) []float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	inv := float32(1.0 / (float64(sum) + 1e-9))
	for i := range v {
		v[i] *= inv
	}
	return v
}
