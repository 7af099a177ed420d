package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/logger"
	"github.com/recall-labs/recall-cli/internal/similarity"
)

// Retriever ranks stored chunks against a query embedding.
//
// Retrieval is an exhaustive scan: every stored chunk is scored on every
// query. That is a deliberate policy, not a shortcut - it keeps the top-K
// exact at the scale of a single local knowledge base. An approximate index
// would be an external contract change.
type Retriever struct {
	store driven.ChunkStore
}

// NewRetriever creates a retriever over the given chunk store.
func NewRetriever(store driven.ChunkStore) *Retriever {
	return &Retriever{store: store}
}

// Search scores all stored chunks by cosine similarity against query and
// returns the topK best, sorted by descending score. Equal scores break
// deterministically by ascending source ID, then chunk index.
func (r *Retriever) Search(ctx context.Context, query []float32, topK int) ([]domain.SearchHit, error) {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	chunks, err := r.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}
	logger.Debug("Scanning %d stored chunks", len(chunks))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits := make([]domain.SearchHit, 0, len(chunks))
	for _, c := range chunks {
		hits = append(hits, domain.SearchHit{
			SourceID:   c.SourceID,
			ChunkIndex: c.ChunkIndex,
			Text:       c.Text,
			Score:      similarity.Cosine(query, c.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].SourceID != hits[j].SourceID {
			return hits[i].SourceID < hits[j].SourceID
		}
		return hits[i].ChunkIndex < hits[j].ChunkIndex
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}
