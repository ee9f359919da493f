// Command indexer runs one reconciliation pass directly, without Temporal.
// Useful for initial corpus loading and cron-style setups.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"ragbot/internal/config"
	"ragbot/internal/indexer"
	"ragbot/internal/providers"
	"ragbot/internal/splitter"
	"ragbot/internal/storage"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	store := storage.NewChunkStore(db)
	if err := store.EnsureSchema(ctx, cfg.EmbedDim); err != nil {
		log.Fatal(err)
	}

	pm, err := providers.NewManager(cfg)
	if err != nil {
		log.Fatal(err)
	}

	rec := indexer.New(store, pm.FirstEmbedProvider(), splitter.New(cfg.ChunkSize, cfg.ChunkOverlap), cfg.DocsDir, cfg.IndexFile)
	sum, err := rec.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("index pass done: indexed=%d deleted=%d skipped=%d failed=%d chunks=%d", sum.Indexed, sum.Deleted, sum.Skipped, sum.Failed, sum.Chunks)
}
