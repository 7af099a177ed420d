package driven

import "context"

// Extractor turns a source locator (file path, URL) into raw text.
// An extractor that finds no text after trimming returns
// domain.ErrNoExtractableContent; it never performs OCR itself.
type Extractor interface {
	Extract(ctx context.Context, locator string) (string, error)
}
