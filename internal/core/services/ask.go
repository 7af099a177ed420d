package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.Asker = (*AskService)(nil)

// AskService turns a question into a grounded answer: embed the question,
// rank stored chunks, assemble a context block, ask the answering model.
type AskService struct {
	embedder  driven.EmbeddingService
	retriever *Retriever
	answerer  driven.AnswerService

	topK            int
	contextMaxChars int
}

// NewAskService creates an ask service. topK and contextMaxChars fall back
// to the deployment defaults when zero or negative.
func NewAskService(
	embedder driven.EmbeddingService,
	retriever *Retriever,
	answerer driven.AnswerService,
	topK int,
	contextMaxChars int,
) *AskService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	if contextMaxChars <= 0 {
		contextMaxChars = domain.DefaultContextMaxChars
	}

	return &AskService{
		embedder:        embedder,
		retriever:       retriever,
		answerer:        answerer,
		topK:            topK,
		contextMaxChars: contextMaxChars,
	}
}

// Ask answers the question grounded in stored memories.
// An empty or whitespace question returns "" without touching the embedding
// gateway or the answering model. Collaborator failures propagate unchanged;
// nothing is retried and no partial answer is produced.
func (s *AskService) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", nil
	}
	if s.embedder == nil {
		return "", domain.ErrEmbeddingUnavailable
	}
	if s.answerer == nil {
		return "", domain.ErrAnswerUnavailable
	}

	logger.Section("Ask")
	logger.Debug("Question: %q", question)

	queryEmbedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	hits, err := s.retriever.Search(ctx, queryEmbedding, s.topK)
	if err != nil {
		return "", fmt.Errorf("search memories: %w", err)
	}
	logger.Info("RAG hits: %d", len(hits))

	contextBlock := BuildContext(hits, s.contextMaxChars)

	answer, err := s.answerer.Complete(ctx, question, contextBlock)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return answer, nil
}
