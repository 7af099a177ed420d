package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// NoMemoriesSentinel is returned instead of an empty context block so the
// answering model always receives something explicit.
const NoMemoriesSentinel = "No relevant memories were found for this question."

// BuildContext formats hits into a citation-annotated context block capped
// near maxChars. Hits are re-sorted by descending score defensively; the
// caller is not assumed to have ranked them. Each hit becomes a
// "[sourceId#chunkIndex score=X.XXX]" header plus text and a blank line.
//
// Truncation happens at hit granularity: hits are appended until the block
// reaches maxChars, so the last included hit may push the block past the cap
// by its own length. The omitted tail is exactly the lowest-scored hits.
func BuildContext(hits []domain.SearchHit, maxChars int) string {
	if len(hits) == 0 {
		return NoMemoriesSentinel
	}

	sorted := make([]domain.SearchHit, len(hits))
	copy(sorted, hits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		if sorted[i].SourceID != sorted[j].SourceID {
			return sorted[i].SourceID < sorted[j].SourceID
		}
		return sorted[i].ChunkIndex < sorted[j].ChunkIndex
	})

	var sb strings.Builder
	for _, h := range sorted {
		fmt.Fprintf(&sb, "[%s#%d score=%.3f]\n%s\n\n", h.SourceID, h.ChunkIndex, h.Score, h.Text)
		if sb.Len() >= maxChars {
			break
		}
	}

	block := strings.TrimSpace(sb.String())
	if block == "" {
		return NoMemoriesSentinel
	}
	return block
}
