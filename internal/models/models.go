package models

// Chunk is a bounded text segment derived from one source document. Its ID is
// stable for a given (source path, ordinal) pair so re-indexing a changed
// document replaces the previous generation of chunks.
type Chunk struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Ordinal int    `json:"ordinal"`
	Text    string `json:"text"`
}

// SearchResult is one nearest-neighbor hit from the vector store, best match
// first. Score is cosine similarity (1 - distance).
type SearchResult struct {
	ChunkID string  `json:"chunk_id"`
	Source  string  `json:"source"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// Message is one turn of an OpenAI-style chat completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PlotSpec is the transient chart description parsed from model output.
// Labels and Values are parallel; for pie charts Labels name the slices.
type PlotSpec struct {
	Type   string    `json:"type"`
	Labels []string  `json:"x"`
	Values []float64 `json:"y"`
	Title  string    `json:"title"`
	XLabel string    `json:"xlabel"`
	YLabel string    `json:"ylabel"`
}
