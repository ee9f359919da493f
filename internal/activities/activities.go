// Package activities hosts the Temporal activity implementations around the
// document reconciler. Each activity is a thin, deterministic-input wrapper;
// the reconciler owns the actual extract/split/embed/store logic.
package activities

import (
	"context"
	"fmt"

	"ragbot/internal/config"
	"ragbot/internal/indexer"
	"ragbot/internal/manifest"
	"ragbot/internal/providers"
	"ragbot/internal/splitter"
	"ragbot/internal/storage"
)

type Activities struct {
	cfg       config.Config
	rec       *indexer.Reconciler
	indexPath string
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	pm, err := providers.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	store := storage.NewChunkStore(db)
	rec := indexer.New(
		store,
		pm.FirstEmbedProvider(),
		splitter.New(cfg.ChunkSize, cfg.ChunkOverlap),
		cfg.DocsDir,
		cfg.IndexFile,
	)
	return &Activities{cfg: cfg, rec: rec, indexPath: cfg.IndexFile}, nil
}

// PlanIndexActivity diffs the document folder against the manifest without
// mutating anything.
func (a *Activities) PlanIndexActivity(ctx context.Context, in PlanIndexInput) (PlanIndexOutput, error) {
	_ = in
	plan, err := a.rec.Plan(ctx)
	if err != nil {
		return PlanIndexOutput{}, fmt.Errorf("plan index pass: %w", err)
	}
	return PlanIndexOutput{Plan: plan}, nil
}

// IndexDocumentActivity re-derives one document's chunk generation in the
// vector store.
func (a *Activities) IndexDocumentActivity(ctx context.Context, in IndexDocumentInput) (IndexDocumentOutput, error) {
	n, err := a.rec.IndexFile(ctx, in.Path)
	if err != nil {
		return IndexDocumentOutput{}, err
	}
	return IndexDocumentOutput{Chunks: n}, nil
}

// DeleteDocumentActivity drops every chunk derived from a vanished document.
func (a *Activities) DeleteDocumentActivity(ctx context.Context, in DeleteDocumentInput) error {
	return a.rec.DeleteFile(ctx, in.Path)
}

// SaveManifestActivity atomically rewrites the fingerprint manifest with the
// outcome of the pass.
func (a *Activities) SaveManifestActivity(ctx context.Context, in SaveManifestInput) error {
	_ = ctx
	return manifest.Save(a.indexPath, in.Entries)
}
