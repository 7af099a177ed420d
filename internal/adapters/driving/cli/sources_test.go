package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestSourcesCmd_Empty(t *testing.T) {
	cleanup := setupTestServices(nil, nil, &fakeChunkStore{})
	defer cleanup()

	out, err := execute(t, "sources")

	require.NoError(t, err)
	assert.Contains(t, out, "No sources ingested yet.")
}

func TestSourcesCmd_ListsSourcesWithCounts(t *testing.T) {
	store := &fakeChunkStore{sources: []domain.SourceInfo{
		{SourceID: "pdf:report.pdf", Chunks: 12},
		{SourceID: "url:https://example.com", Chunks: 3},
	}}
	cleanup := setupTestServices(nil, nil, store)
	defer cleanup()

	out, err := execute(t, "sources")

	require.NoError(t, err)
	assert.Contains(t, out, "pdf:report.pdf (12 chunks)")
	assert.Contains(t, out, "url:https://example.com (3 chunks)")
}

func TestSourcesCmd_JSON(t *testing.T) {
	store := &fakeChunkStore{sources: []domain.SourceInfo{
		{SourceID: "notes", Chunks: 2},
	}}
	cleanup := setupTestServices(nil, nil, store)
	defer cleanup()

	out, err := execute(t, "sources", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"source_id": "notes"`)
	assert.Contains(t, out, `"chunks": 2`)
}

func TestForgetCmd_DeletesSource(t *testing.T) {
	store := &fakeChunkStore{deleteCounts: map[string]int64{"notes": 5}}
	cleanup := setupTestServices(nil, nil, store)
	defer cleanup()

	out, err := execute(t, "forget", "notes")

	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, store.deleted)
	assert.Contains(t, out, "Forgot notes (5 chunks)")
}

func TestForgetCmd_UnknownSource(t *testing.T) {
	store := &fakeChunkStore{}
	cleanup := setupTestServices(nil, nil, store)
	defer cleanup()

	out, err := execute(t, "forget", "missing")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing stored for missing")
}
