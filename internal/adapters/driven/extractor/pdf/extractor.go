// Package pdf provides text extraction from PDF files.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor extracts plain text from PDF files on disk.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract reads the PDF at the given path and returns its plain text.
// Returns domain.ErrNoExtractableContent when the document yields no text,
// which happens for scanned PDFs without an OCR layer.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	plainText, err := rdr.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plainText); err != nil {
		return "", fmt.Errorf("read pdf text from %s: %w", path, err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrNoExtractableContent, path)
	}

	return text, nil
}
