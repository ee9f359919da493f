package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	"ragbot/internal/config"
	"ragbot/internal/plot"
	"ragbot/internal/providers"
	"ragbot/internal/retrieve"
	"ragbot/internal/router"
	"ragbot/internal/storage"
	"ragbot/internal/telegram"
	"ragbot/internal/websearch"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	if err := cfg.ValidateBot(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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

	// /reindex degrades to "unavailable" when the Temporal server is down;
	// answering questions must not depend on it.
	var temporal client.Client
	if tc, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress}); err != nil {
		log.Printf("temporal unavailable, /reindex disabled: %v", err)
	} else {
		temporal = tc
		defer tc.Close()
	}

	handler := telegram.NewHandler(
		router.New(cfg.PlotKeywords, cfg.WebKeywords),
		retrieve.New(pm.FirstEmbedProvider(), store, cfg.TopK),
		pm.FirstChatProvider(),
		websearch.New(cfg.SearchBaseURL),
		plot.NewRequester(pm.FirstChatProvider()),
		plot.Render,
		cfg.SearchResults,
	)

	bot, err := telegram.NewBot(cfg.BotToken, handler, temporal, cfg.TemporalTaskQueue)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("ragbot starting: model=%s top_k=%d docs_dir=%s", cfg.CompletionModel, cfg.TopK, cfg.DocsDir)
	bot.Start()
}
