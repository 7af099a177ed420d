package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestBuildContext_NoHits(t *testing.T) {
	assert.Equal(t, NoMemoriesSentinel, BuildContext(nil, 1000))
	assert.Equal(t, NoMemoriesSentinel, BuildContext([]domain.SearchHit{}, 1000))
}

func TestBuildContext_CitationFormat(t *testing.T) {
	hits := []domain.SearchHit{
		{SourceID: "pdf:report.pdf", ChunkIndex: 2, Text: "latency went down", Score: 0.98765},
	}

	block := BuildContext(hits, 1000)

	assert.Equal(t, "[pdf:report.pdf#2 score=0.988]\nlatency went down", block)
}

func TestBuildContext_ScoreThreeDecimals(t *testing.T) {
	hits := []domain.SearchHit{
		{SourceID: "a", ChunkIndex: 0, Text: "x", Score: 0.5},
	}

	block := BuildContext(hits, 1000)

	assert.Contains(t, block, "score=0.500]")
}

func TestBuildContext_SortsByDescendingScore(t *testing.T) {
	hits := []domain.SearchHit{
		{SourceID: "low", ChunkIndex: 0, Text: "l", Score: 0.1},
		{SourceID: "high", ChunkIndex: 0, Text: "h", Score: 0.9},
		{SourceID: "mid", ChunkIndex: 0, Text: "m", Score: 0.5},
	}

	block := BuildContext(hits, 10_000)

	hi := strings.Index(block, "[high#0")
	mi := strings.Index(block, "[mid#0")
	lo := strings.Index(block, "[low#0")
	require.GreaterOrEqual(t, hi, 0)
	assert.Less(t, hi, mi)
	assert.Less(t, mi, lo)
}

func TestBuildContext_EqualScoresBreakBySourceThenIndex(t *testing.T) {
	hits := []domain.SearchHit{
		{SourceID: "b", ChunkIndex: 0, Text: "x", Score: 0.5},
		{SourceID: "a", ChunkIndex: 1, Text: "x", Score: 0.5},
		{SourceID: "a", ChunkIndex: 0, Text: "x", Score: 0.5},
	}

	block := BuildContext(hits, 10_000)

	a0 := strings.Index(block, "[a#0")
	a1 := strings.Index(block, "[a#1")
	b0 := strings.Index(block, "[b#0")
	assert.Less(t, a0, a1)
	assert.Less(t, a1, b0)
}

func TestBuildContext_TruncatesAtHitGranularity(t *testing.T) {
	hits := []domain.SearchHit{
		{SourceID: "first", ChunkIndex: 0, Text: strings.Repeat("a", 100), Score: 0.9},
		{SourceID: "second", ChunkIndex: 0, Text: strings.Repeat("b", 100), Score: 0.8},
		{SourceID: "third", ChunkIndex: 0, Text: strings.Repeat("c", 100), Score: 0.7},
	}

	// The first hit alone exceeds the cap, so it is the only one included.
	block := BuildContext(hits, 50)

	assert.Contains(t, block, "[first#0")
	assert.NotContains(t, block, "[second#0")
	assert.NotContains(t, block, "[third#0")
}

func TestBuildContext_IncludedHitMayExceedCap(t *testing.T) {
	hits := []domain.SearchHit{
		{SourceID: "only", ChunkIndex: 0, Text: strings.Repeat("z", 500), Score: 1.0},
	}

	block := BuildContext(hits, 10)

	// Whole hits go in; the cap stops further hits, it does not slice text.
	assert.Contains(t, block, strings.Repeat("z", 500))
}

func TestBuildContext_DoesNotMutateInput(t *testing.T) {
	hits := []domain.SearchHit{
		{SourceID: "low", ChunkIndex: 0, Text: "l", Score: 0.1},
		{SourceID: "high", ChunkIndex: 0, Text: "h", Score: 0.9},
	}

	BuildContext(hits, 1000)

	assert.Equal(t, "low", hits[0].SourceID)
	assert.Equal(t, "high", hits[1].SourceID)
}
