// Package memory provides an in-memory chunk store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// chunkKey is the unique key of a stored chunk.
type chunkKey struct {
	sourceID string
	index    int
}

// Store keeps chunks in a mutex-guarded map. Rows are copied on the way in
// and out, so a reader never observes a row mid-replacement.
type Store struct {
	mu     sync.RWMutex
	chunks map[chunkKey]domain.Chunk
}

// NewStore creates an empty in-memory chunk store.
func NewStore() *Store {
	return &Store{
		chunks: make(map[chunkKey]domain.Chunk),
	}
}

// Upsert inserts or fully replaces the row for the chunk's key.
func (s *Store) Upsert(_ context.Context, chunk domain.Chunk) error {
	if chunk.SourceID == "" || chunk.ChunkIndex < 0 {
		return domain.ErrInvalidInput
	}

	stored := chunk
	stored.Embedding = append([]float32(nil), chunk.Embedding...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[chunkKey{chunk.SourceID, chunk.ChunkIndex}] = stored
	return nil
}

// All returns a snapshot of every stored chunk, ordered by source ID and
// chunk index for deterministic scans.
func (s *Store) All(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		out := c
		out.Embedding = append([]float32(nil), c.Embedding...)
		chunks = append(chunks, out)
	}

	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].SourceID != chunks[j].SourceID {
			return chunks[i].SourceID < chunks[j].SourceID
		}
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})

	return chunks, nil
}

// Sources lists ingested sources with chunk counts.
func (s *Store) Sources(_ context.Context) ([]domain.SourceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for key := range s.chunks {
		counts[key.sourceID]++
	}

	sources := make([]domain.SourceInfo, 0, len(counts))
	for id, n := range counts {
		sources = append(sources, domain.SourceInfo{SourceID: id, Chunks: n})
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].SourceID < sources[j].SourceID
	})

	return sources, nil
}

// DeleteSource removes every chunk of the source.
func (s *Store) DeleteSource(_ context.Context, sourceID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for key := range s.chunks {
		if key.sourceID == sourceID {
			delete(s.chunks, key)
			deleted++
		}
	}
	return deleted, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
