// Package domain holds the core types of the memory store.
package domain

// Chunk is one embedded window of a source document. Chunks are keyed by
// (SourceID, ChunkIndex); re-ingesting a source replaces its chunks in place.
type Chunk struct {
	// SourceID identifies the document this chunk came from.
	SourceID string `json:"source_id"`

	// ChunkIndex is the zero-based position of this chunk within the source.
	ChunkIndex int `json:"chunk_index"`

	// Text is the chunk content after trimming.
	Text string `json:"text"`

	// Embedding is the vector representation of Text.
	Embedding []float32 `json:"embedding"`

	// PageNumber is the source page this chunk starts on, when known.
	PageNumber *int `json:"page_number,omitempty"`

	// Title is an optional human-readable label for the source.
	Title string `json:"title,omitempty"`
}

// SearchHit is a chunk scored against a query embedding.
type SearchHit struct {
	SourceID   string  `json:"source_id"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// SourceInfo summarises one ingested source.
type SourceInfo struct {
	SourceID string `json:"source_id"`
	Chunks   int    `json:"chunks"`
}
