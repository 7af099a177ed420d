package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall-cli/internal/adapters/driven/storage/memory"
	"github.com/recall-labs/recall-cli/internal/core/domain"
)

func TestAsk_EmptyQuestionShortCircuits(t *testing.T) {
	embedder := &fakeEmbedder{defaultVec: []float32{1, 0}}
	answerer := &fakeAnswerer{answer: "never"}
	svc := NewAskService(embedder, NewRetriever(memory.NewStore()), answerer, 0, 0)

	answer, err := svc.Ask(context.Background(), "   \t\n ")

	require.NoError(t, err)
	assert.Empty(t, answer)
	assert.Zero(t, embedder.callCount())
	assert.Zero(t, answerer.calls)
}

func TestAsk_NilEmbedder(t *testing.T) {
	svc := NewAskService(nil, NewRetriever(memory.NewStore()), &fakeAnswerer{}, 0, 0)

	_, err := svc.Ask(context.Background(), "anything")

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestAsk_NilAnswerer(t *testing.T) {
	embedder := &fakeEmbedder{defaultVec: []float32{1, 0}}
	svc := NewAskService(embedder, NewRetriever(memory.NewStore()), nil, 0, 0)

	_, err := svc.Ask(context.Background(), "anything")

	assert.ErrorIs(t, err, domain.ErrAnswerUnavailable)
}

func TestAsk_GroundedAnswer(t *testing.T) {
	store := seedStore(t,
		domain.Chunk{SourceID: "notes", ChunkIndex: 0, Text: "the sky is blue", Embedding: []float32{1, 0}},
		domain.Chunk{SourceID: "notes", ChunkIndex: 1, Text: "grass is green", Embedding: []float32{0, 1}},
	)
	embedder := &fakeEmbedder{
		vectors:    map[string][]float32{"what colour is the sky": {1, 0}},
		defaultVec: []float32{0, 1},
	}
	answerer := &fakeAnswerer{answer: "Blue."}
	svc := NewAskService(embedder, NewRetriever(store), answerer, 2, 0)

	answer, err := svc.Ask(context.Background(), "what colour is the sky")

	require.NoError(t, err)
	assert.Equal(t, "Blue.", answer)
	assert.Equal(t, "what colour is the sky", answerer.lastQuestion)

	// Best-matching chunk leads the context block.
	assert.True(t, strings.HasPrefix(answerer.lastContext, "[notes#0"))
	assert.Contains(t, answerer.lastContext, "the sky is blue")
}

func TestAsk_EmptyStoreSendsSentinel(t *testing.T) {
	embedder := &fakeEmbedder{defaultVec: []float32{1, 0}}
	answerer := &fakeAnswerer{answer: "no idea"}
	svc := NewAskService(embedder, NewRetriever(memory.NewStore()), answerer, 0, 0)

	_, err := svc.Ask(context.Background(), "anything at all")

	require.NoError(t, err)
	assert.Equal(t, NoMemoriesSentinel, answerer.lastContext)
}

func TestAsk_EmbedErrorPropagates(t *testing.T) {
	embedder := &fakeEmbedder{err: errEmbedFailed}
	answerer := &fakeAnswerer{}
	svc := NewAskService(embedder, NewRetriever(memory.NewStore()), answerer, 0, 0)

	_, err := svc.Ask(context.Background(), "anything")

	require.Error(t, err)
	assert.ErrorIs(t, err, errEmbedFailed)
	assert.Contains(t, err.Error(), "embed question")
	assert.Zero(t, answerer.calls)
}

func TestAsk_SearchErrorPropagates(t *testing.T) {
	embedder := &fakeEmbedder{defaultVec: []float32{1, 0}}
	svc := NewAskService(embedder, NewRetriever(failingStore{}), &fakeAnswerer{}, 0, 0)

	_, err := svc.Ask(context.Background(), "anything")

	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreFailed)
	assert.Contains(t, err.Error(), "search memories")
}

func TestAsk_AnswerErrorPropagates(t *testing.T) {
	embedder := &fakeEmbedder{defaultVec: []float32{1, 0}}
	answerer := &fakeAnswerer{err: errStoreFailed}
	svc := NewAskService(embedder, NewRetriever(memory.NewStore()), answerer, 0, 0)

	_, err := svc.Ask(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer question")
}

func TestAsk_RespectsTopK(t *testing.T) {
	store := memory.NewStore()
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Upsert(context.Background(), domain.Chunk{
			SourceID: "s", ChunkIndex: i, Text: "t", Embedding: []float32{1, 0},
		}))
	}
	embedder := &fakeEmbedder{defaultVec: []float32{1, 0}}
	answerer := &fakeAnswerer{answer: "ok"}
	svc := NewAskService(embedder, NewRetriever(store), answerer, 3, 0)

	_, err := svc.Ask(context.Background(), "anything")

	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(answerer.lastContext, "[s#"))
}
