package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ragbot/internal/manifest"
	"ragbot/internal/models"
	"ragbot/internal/providers"
	"ragbot/internal/splitter"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	upserts   int
	deletes   int
	bySource  map[string][]models.Chunk
	deletedFn []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{bySource: map[string][]models.Chunk{}}
}

func (f *fakeStore) Upsert(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	f.upserts++
	for _, c := range chunks {
		f.bySource[c.Source] = append(f.bySource[c.Source], c)
	}
	return nil
}

func (f *fakeStore) DeleteBySource(ctx context.Context, source string) error {
	f.deletes++
	f.deletedFn = append(f.deletedFn, source)
	delete(f.bySource, source)
	return nil
}

type countingEmbedder struct {
	inner providers.EmbeddingProvider
	calls int
}

func (c *countingEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	c.calls++
	return c.inner.Embed(ctx, inputs)
}

func newTestReconciler(t *testing.T, docsDir string) (*Reconciler, *fakeStore, *countingEmbedder, string) {
	t.Helper()
	store := newFakeStore()
	emb := &countingEmbedder{inner: providers.NewMockProvider(16)}
	indexPath := filepath.Join(t.TempDir(), "docs_index.json")
	r := New(store, emb, splitter.New(80, 10), docsDir, indexPath)
	return r, store, emb, indexPath
}

func TestRunIndexesNewFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("Вклады Сбера: ставка 18% годовых."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.md"), []byte("not indexed"), 0o644))

	r, store, emb, _ := newTestReconciler(t, dir)
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sum.Indexed)
	require.Equal(t, 0, sum.Failed)
	require.Equal(t, 1, emb.calls)
	require.Len(t, store.bySource[filepath.Join(dir, "a.txt")], sum.Chunks)
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("ипотека для молодой семьи"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("условия по кредиту"), 0o644))

	r, store, emb, _ := newTestReconciler(t, dir)
	_, err := r.Run(context.Background())
	require.NoError(t, err)

	upserts, deletes, embeds := store.upserts, store.deletes, emb.calls
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, sum.Indexed)
	require.Equal(t, 2, sum.Skipped)
	require.Equal(t, upserts, store.upserts, "second pass must not upsert")
	require.Equal(t, deletes, store.deletes, "second pass must not delete")
	require.Equal(t, embeds, emb.calls, "second pass must not embed")
}

func TestRunDeletesVanishedDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("СберПрайм подписка"), 0o644))

	r, store, _, indexPath := newTestReconciler(t, dir)
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, store.bySource, path)

	require.NoError(t, os.Remove(path))
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sum.Deleted)
	require.NotContains(t, store.bySource, path)

	m, err := loadManifest(indexPath)
	require.NoError(t, err)
	require.NotContains(t, m, path)
}

func TestRunReindexesChangedFileByReplacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("первая версия документа про вклады и накопительные счета"), 0o644))

	r, store, _, _ := newTestReconciler(t, dir)
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	firstGen := len(store.bySource[path])
	require.Greater(t, firstGen, 0)

	require.NoError(t, os.WriteFile(path, []byte("короче"), 0o644))
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sum.Indexed)
	require.Contains(t, store.deletedFn, path)
	require.Len(t, store.bySource[path], 1, "old generation must be fully replaced")
}

func TestRunKeepsStaleEntryForUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.docx")
	require.NoError(t, os.WriteFile(good, []byte("нормальный документ"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("здесь не zip, читать нельзя"), 0o644))

	r, _, _, indexPath := newTestReconciler(t, dir)
	sum, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sum.Indexed, "good file still indexed")
	require.Equal(t, 1, sum.Failed)

	m, err := loadManifest(indexPath)
	require.NoError(t, err)
	require.Contains(t, m, good)
	require.NotContains(t, m, bad, "failed file gets no fingerprint, so it is retried")

	// next pass retries the broken file and still fails, without aborting
	sum, err = r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sum.Failed)
	require.Equal(t, 1, sum.Skipped)
}

func TestChunkID(t *testing.T) {
	require.Equal(t, "documents/a.txt_3", ChunkID("documents/a.txt", 3))
}

func loadManifest(path string) (map[string]string, error) {
	return manifest.Load(path)
}
