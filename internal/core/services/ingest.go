package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/recall-labs/recall-cli/internal/chunker"
	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/core/ports/driving"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService drives the chunk -> embed -> upsert pipeline.
// Chunks are processed sequentially; the first embedding or storage failure
// aborts the rest of the call. Chunks persisted before the failure stand -
// partial ingestion is observable, not rolled back.
type IngestService struct {
	store    driven.ChunkStore
	embedder driven.EmbeddingService
	splitter *chunker.Splitter

	pdfExtractor driven.Extractor
	webExtractor driven.Extractor

	// limiter throttles embedding calls. Nil means unthrottled.
	limiter *rate.Limiter
}

// NewIngestService creates an ingest service. The extractors are optional;
// without them only IngestText works. embedRateLimit is in embedding calls
// per second, zero or less disables throttling.
func NewIngestService(
	store driven.ChunkStore,
	embedder driven.EmbeddingService,
	splitter *chunker.Splitter,
	pdfExtractor driven.Extractor,
	webExtractor driven.Extractor,
	embedRateLimit float64,
) *IngestService {
	var limiter *rate.Limiter
	if embedRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(embedRateLimit), 1)
	}

	return &IngestService{
		store:        store,
		embedder:     embedder,
		splitter:     splitter,
		pdfExtractor: pdfExtractor,
		webExtractor: webExtractor,
		limiter:      limiter,
	}
}

// IngestText chunks, embeds and upserts raw text under sourceID.
func (s *IngestService) IngestText(ctx context.Context, sourceID, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrNoExtractableContent
	}
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	logger.Section("Ingest")
	logger.Debug("Source: %s (%d chars)", sourceID, len(text))

	count := 0
	for idx, chunkText := range s.splitter.Chunks(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		embedding, err := s.embedder.Embed(ctx, chunkText)
		if err != nil {
			return fmt.Errorf("embed chunk %d of %s: %w", idx, sourceID, err)
		}

		err = s.store.Upsert(ctx, domain.Chunk{
			SourceID:   sourceID,
			ChunkIndex: idx,
			Text:       chunkText,
			Embedding:  embedding,
		})
		if err != nil {
			return fmt.Errorf("store chunk %d of %s: %w", idx, sourceID, err)
		}
		count++
	}

	logger.Info("Ingested %d chunks for %s", count, sourceID)
	return nil
}

// IngestPDF extracts text from the PDF at path and ingests it under
// "pdf:<basename>".
func (s *IngestService) IngestPDF(ctx context.Context, path string) error {
	if s.pdfExtractor == nil {
		return fmt.Errorf("pdf ingestion: %w", domain.ErrInvalidInput)
	}

	text, err := s.pdfExtractor.Extract(ctx, path)
	if err != nil {
		return fmt.Errorf("extract pdf %s: %w", path, err)
	}
	return s.IngestText(ctx, "pdf:"+filepath.Base(path), text)
}

// IngestPDFStream spools content to a temporary file and ingests it as a
// PDF named fileName. The temporary file is removed afterwards.
func (s *IngestService) IngestPDFStream(ctx context.Context, fileName string, content io.Reader) error {
	if s.pdfExtractor == nil {
		return fmt.Errorf("pdf ingestion: %w", domain.ErrInvalidInput)
	}

	tmp := filepath.Join(os.TempDir(), uuid.New().String()+"_"+filepath.Base(fileName))

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp pdf: %w", err)
	}
	defer os.Remove(tmp)

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return fmt.Errorf("spool pdf content: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flush temp pdf: %w", err)
	}

	text, err := s.pdfExtractor.Extract(ctx, tmp)
	if err != nil {
		return fmt.Errorf("extract pdf %s: %w", fileName, err)
	}
	return s.IngestText(ctx, "pdf:"+filepath.Base(fileName), text)
}

// IngestURL fetches the page, strips markup and ingests the remaining text
// under "url:<url>".
func (s *IngestService) IngestURL(ctx context.Context, url string) error {
	if s.webExtractor == nil {
		return fmt.Errorf("url ingestion: %w", domain.ErrInvalidInput)
	}

	text, err := s.webExtractor.Extract(ctx, url)
	if err != nil {
		return fmt.Errorf("extract url %s: %w", url, err)
	}
	return s.IngestText(ctx, "url:"+url, text)
}
