// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// ChunkStore persists chunks keyed by (SourceID, ChunkIndex).
// Backed by SQLite for durable storage.
type ChunkStore interface {
	// Upsert inserts the chunk or, when the key already exists, replaces
	// text and embedding atomically. The row is fully replaced, never
	// partially written.
	Upsert(ctx context.Context, chunk domain.Chunk) error

	// All returns a snapshot of every stored chunk for exhaustive
	// similarity scanning. Rows whose stored embedding fails to decode
	// are skipped with a logged warning rather than failing the snapshot.
	All(ctx context.Context) ([]domain.Chunk, error)

	// Sources lists ingested sources with their chunk counts.
	Sources(ctx context.Context) ([]domain.SourceInfo, error)

	// DeleteSource removes every chunk of a source and reports how many
	// rows were deleted.
	DeleteSource(ctx context.Context, sourceID string) (int64, error)

	// Close releases the underlying storage.
	Close() error
}
