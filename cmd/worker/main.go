package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"ragbot/internal/activities"
	"ragbot/internal/api"
	"ragbot/internal/config"
	"ragbot/internal/storage"
	"ragbot/internal/workflows"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.NewChunkStore(db).EnsureSchema(ctx, cfg.EmbedDim); err != nil {
		log.Fatal(err)
	}

	a, err := activities.New(cfg, db)
	if err != nil {
		log.Fatal(err)
	}
	activities.Register(w, a)

	srv := api.NewServer(cfg, c)
	go func() {
		log.Printf("ops server listening on %s", cfg.HTTPAddr)
		if err := http.ListenAndServe(cfg.HTTPAddr, srv.Routes()); err != nil {
			log.Printf("ops server stopped: %v", err)
		}
	}()

	log.Printf("ragbot worker listening on %s queue=%s embed_providers=%q docs_dir=%s", cfg.TemporalAddress, cfg.TemporalTaskQueue, cfg.EmbedProviders, cfg.DocsDir)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal(err)
	}
}
