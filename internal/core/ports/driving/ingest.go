// Package driving provides interfaces for application entry points (primary/inbound ports).
package driving

import (
	"context"
	"io"
)

// Ingestor drives the chunk -> embed -> upsert pipeline for a source.
// Ingestion is idempotent per source: re-ingesting with the same chunking
// parameters overwrites prior chunks at the same indices. A failure aborts
// the remaining chunks of that call; already persisted chunks stand.
type Ingestor interface {
	// IngestText ingests raw text under the given source ID.
	// Empty or whitespace-only text fails with ErrNoExtractableContent.
	IngestText(ctx context.Context, sourceID, text string) error

	// IngestPDF extracts text from the PDF at path and ingests it under
	// a "pdf:" source ID.
	IngestPDF(ctx context.Context, path string) error

	// IngestPDFStream spools the PDF content to a temporary file, then
	// ingests it as IngestPDF would.
	IngestPDFStream(ctx context.Context, fileName string, content io.Reader) error

	// IngestURL fetches the page, strips markup and ingests the text
	// under a "url:" source ID.
	IngestURL(ctx context.Context, url string) error
}
