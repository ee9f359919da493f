package storage

import (
	"context"
	"fmt"
	"strings"

	"ragbot/internal/models"
)

// ChunkStore is the pgvector-backed vector store for document chunks.
// Concurrent reads are safe; writes happen only from an indexing pass, and
// passes are serialized against each other by the caller.
type ChunkStore struct {
	db *DB
}

func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// EnsureSchema creates the extension and table on first use. Safe to call on
// every startup.
func (s *ChunkStore) EnsureSchema(ctx context.Context, dim int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS doc_chunks (
  chunk_id  text PRIMARY KEY,
  source    text NOT NULL,
  ordinal   integer NOT NULL,
  text      text NOT NULL,
  embedding vector(%d)
)`, dim),
		`CREATE INDEX IF NOT EXISTS doc_chunks_source_idx ON doc_chunks (source)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Upsert stores chunks with their embeddings in one transaction. Chunk ids
// are derived from (source, ordinal), so re-inserting a document's chunks
// overwrites the previous generation under the same ids.
func (s *ChunkStore) Upsert(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if len(chunks) == 0 {
		return nil
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks/vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx upsert chunks: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for i, c := range chunks {
		_, err := tx.Exec(ctx, `
INSERT INTO doc_chunks (chunk_id, source, ordinal, text, embedding)
VALUES ($1, $2, $3, $4, $5::vector)
ON CONFLICT (chunk_id)
DO UPDATE SET
  source = EXCLUDED.source,
  ordinal = EXCLUDED.ordinal,
  text = EXCLUDED.text,
  embedding = EXCLUDED.embedding`,
			c.ID, c.Source, c.Ordinal, c.Text, VectorLiteral(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("upsert chunk %s: %w", c.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunks tx: %w", err)
	}
	return nil
}

// DeleteBySource removes every chunk derived from the given document path,
// regardless of how many ordinals the previous generation had.
func (s *ChunkStore) DeleteBySource(ctx context.Context, source string) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM doc_chunks WHERE source = $1`, source); err != nil {
		return fmt.Errorf("delete chunks for %s: %w", source, err)
	}
	return nil
}

// Search returns the k nearest chunks to the query vector, best match first.
func (s *ChunkStore) Search(ctx context.Context, queryVec []float32, k int) ([]models.SearchResult, error) {
	if k <= 0 {
		k = 5
	}
	rows, err := s.db.Pool.Query(ctx, `
SELECT chunk_id,
       source,
       text,
       1 - (embedding <=> $1::vector) AS score
FROM doc_chunks
WHERE embedding IS NOT NULL
ORDER BY embedding <=> $1::vector
LIMIT $2`, VectorLiteral(queryVec), k)
	if err != nil {
		return nil, fmt.Errorf("query vector search: %w", err)
	}
	defer rows.Close()

	results := make([]models.SearchResult, 0, k)
	for rows.Next() {
		var r models.SearchResult
		if err := rows.Scan(&r.ChunkID, &r.Source, &r.Text, &r.Score); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return results, nil
}

// VectorLiteral renders a float32 slice as a pgvector text literal.
func VectorLiteral(v []float32) string {
	parts := make([]string, 0, len(v))
	for _, x := range v {
		parts = append(parts, fmt.Sprintf("%f", x))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
