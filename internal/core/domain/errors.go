package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoExtractableContent indicates a source produced no text after
	// extraction and trimming. The caller should route the source through
	// an alternate extraction path (e.g. OCR for scanned PDFs); it is
	// never retried automatically.
	ErrNoExtractableContent = errors.New("no extractable content")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptEmbedding indicates a stored embedding failed to decode.
	// The affected row is skipped during retrieval, never coerced to a
	// zero vector.
	ErrCorruptEmbedding = errors.New("corrupt stored embedding")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and retrieval are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAnswerUnavailable indicates the answering model is not configured.
	ErrAnswerUnavailable = errors.New("answering service unavailable")
)
