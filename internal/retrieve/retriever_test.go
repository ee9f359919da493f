package retrieve

import (
	"context"
	"testing"

	"ragbot/internal/models"

	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type fakeSearcher struct {
	calls   int
	lastK   int
	results []models.SearchResult
}

func (f *fakeSearcher) Search(ctx context.Context, queryVec []float32, k int) ([]models.SearchResult, error) {
	f.calls++
	f.lastK = k
	return f.results, nil
}

func TestRetrieveReturnsRankedTexts(t *testing.T) {
	emb := &fakeEmbedder{}
	store := &fakeSearcher{results: []models.SearchResult{
		{ChunkID: "a_0", Text: "best", Score: 0.9},
		{ChunkID: "b_1", Text: "second", Score: 0.7},
	}}
	r := New(emb, store, 5)

	texts, err := r.Retrieve(context.Background(), "что такое СберПрайм?")
	require.NoError(t, err)
	require.Equal(t, []string{"best", "second"}, texts)
	require.Equal(t, 1, emb.calls)
	require.Equal(t, 5, store.lastK)
}

func TestRetrieveEmptyQueryMakesNoCalls(t *testing.T) {
	emb := &fakeEmbedder{}
	store := &fakeSearcher{}
	r := New(emb, store, 5)

	for _, q := range []string{"", "   ", "\n\t"} {
		texts, err := r.Retrieve(context.Background(), q)
		require.NoError(t, err)
		require.Empty(t, texts)
	}
	require.Equal(t, 0, emb.calls)
	require.Equal(t, 0, store.calls)
}
