// Package indexer reconciles the watched document folder against the vector
// store, using the persisted manifest to skip work for unchanged files.
package indexer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"ragbot/internal/extract"
	"ragbot/internal/manifest"
	"ragbot/internal/models"
	"ragbot/internal/providers"
	"ragbot/internal/splitter"
	"ragbot/internal/util"
)

// ChunkStore is the slice of the vector store the reconciler mutates.
type ChunkStore interface {
	Upsert(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error
	DeleteBySource(ctx context.Context, source string) error
}

// FileState pairs a document path with its current and previously recorded
// fingerprints. PrevFingerprint is empty for files never indexed before.
type FileState struct {
	Path            string `json:"path"`
	Fingerprint     string `json:"fingerprint"`
	PrevFingerprint string `json:"prev_fingerprint,omitempty"`
}

// Plan is the diff between the folder and the manifest for one pass.
type Plan struct {
	ToIndex    []FileState `json:"to_index"`
	ToDelete   []FileState `json:"to_delete"`
	Unchanged  []FileState `json:"unchanged"`
	Unreadable []FileState `json:"unreadable"`
}

type Summary struct {
	Indexed int `json:"indexed"`
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Chunks  int `json:"chunks"`
}

type Reconciler struct {
	store     ChunkStore
	embedder  providers.EmbeddingProvider
	split     splitter.Splitter
	docsDir   string
	indexPath string
}

func New(store ChunkStore, embedder providers.EmbeddingProvider, split splitter.Splitter, docsDir, indexPath string) *Reconciler {
	return &Reconciler{
		store:     store,
		embedder:  embedder,
		split:     split,
		docsDir:   docsDir,
		indexPath: indexPath,
	}
}

// Plan scans the folder, fingerprints every supported file and diffs the
// result against the persisted manifest. It performs no mutations.
func (r *Reconciler) Plan(ctx context.Context) (Plan, error) {
	_ = ctx
	old, err := manifest.Load(r.indexPath)
	if err != nil {
		return Plan{}, err
	}
	entries, err := os.ReadDir(r.docsDir)
	if err != nil {
		return Plan{}, fmt.Errorf("read docs dir: %w", err)
	}

	var plan Plan
	seen := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(r.docsDir, e.Name())
		if !extract.SupportedExt(path) {
			continue
		}
		seen[path] = true
		prev := old[path]
		fp, err := util.FileFingerprint(path)
		if err != nil {
			log.Printf("indexer: cannot fingerprint %s: %v", path, err)
			plan.Unreadable = append(plan.Unreadable, FileState{Path: path, PrevFingerprint: prev})
			continue
		}
		state := FileState{Path: path, Fingerprint: fp, PrevFingerprint: prev}
		if prev == fp {
			plan.Unchanged = append(plan.Unchanged, state)
		} else {
			plan.ToIndex = append(plan.ToIndex, state)
		}
	}
	deleted := make([]string, 0)
	for path := range old {
		if !seen[path] {
			deleted = append(deleted, path)
		}
	}
	sort.Strings(deleted)
	for _, path := range deleted {
		plan.ToDelete = append(plan.ToDelete, FileState{Path: path, PrevFingerprint: old[path]})
	}
	return plan, nil
}

// IndexFile re-derives one document's chunks: extract, split, embed, then
// replace the previous chunk generation (delete by source, upsert under
// path_ordinal ids). Returns the number of chunks written.
func (r *Reconciler) IndexFile(ctx context.Context, path string) (int, error) {
	text, err := extract.Extract(path)
	if err != nil {
		return 0, err
	}
	parts := r.split.Split(text)
	if len(parts) == 0 {
		return 0, fmt.Errorf("%s: %w", path, util.ErrNoExtractableText)
	}
	chunks := make([]models.Chunk, 0, len(parts))
	texts := make([]string, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, models.Chunk{
			ID:      ChunkID(path, i),
			Source:  path,
			Ordinal: i,
			Text:    part,
		})
		texts = append(texts, part)
	}
	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %s: %w", path, err)
	}
	// Delete-then-reinsert so a shrinking document leaves no stale trailing
	// ordinals behind.
	if err := r.store.DeleteBySource(ctx, path); err != nil {
		return 0, err
	}
	if err := r.store.Upsert(ctx, chunks, vectors); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// DeleteFile drops every stored chunk derived from a vanished document.
func (r *Reconciler) DeleteFile(ctx context.Context, path string) error {
	return r.store.DeleteBySource(ctx, path)
}

// Run executes a full reconciliation pass. A single file's failure is logged
// and skipped; its old manifest entry is carried over so the file is retried
// on the next pass. The manifest is rewritten atomically at the end.
func (r *Reconciler) Run(ctx context.Context) (Summary, error) {
	plan, err := r.Plan(ctx)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	next := map[string]string{}

	for _, f := range plan.Unchanged {
		next[f.Path] = f.Fingerprint
		sum.Skipped++
	}
	for _, f := range plan.Unreadable {
		if f.PrevFingerprint != "" {
			next[f.Path] = f.PrevFingerprint
		}
		sum.Failed++
	}
	for _, f := range plan.ToDelete {
		if err := r.DeleteFile(ctx, f.Path); err != nil {
			log.Printf("indexer: delete chunks for %s: %v", f.Path, err)
			next[f.Path] = f.PrevFingerprint
			sum.Failed++
			continue
		}
		log.Printf("indexer: removed document %s", f.Path)
		sum.Deleted++
	}
	for _, f := range plan.ToIndex {
		n, err := r.IndexFile(ctx, f.Path)
		if err != nil {
			log.Printf("indexer: skip %s: %v", f.Path, err)
			if f.PrevFingerprint != "" {
				next[f.Path] = f.PrevFingerprint
			}
			sum.Failed++
			continue
		}
		log.Printf("indexer: indexed %s (%d chunks)", f.Path, n)
		next[f.Path] = f.Fingerprint
		sum.Indexed++
		sum.Chunks += n
	}

	if err := manifest.Save(r.indexPath, next); err != nil {
		return sum, err
	}
	return sum, nil
}

// ChunkID builds the stable synthetic chunk identity from the document path
// and the chunk's ordinal position.
func ChunkID(path string, ordinal int) string {
	return fmt.Sprintf("%s_%d", path, ordinal)
}
