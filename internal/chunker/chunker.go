// Package chunker splits raw text into overlapping fixed-size windows.
package chunker

import (
	"iter"
	"strings"
)

// DefaultChunkSize is the default window length in characters.
const DefaultChunkSize = 1200

// DefaultOverlap is the default number of overlapping characters between
// consecutive windows.
const DefaultOverlap = 150

// Splitter produces overlapping character windows over text.
// Windows advance by chunkSize-overlap characters; the final window may be
// shorter than chunkSize.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the window length in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in characters.
// An overlap at or above the chunk size is kept as given: iteration then
// stops after the first window instead of looping without progress.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chunks returns a lazy, finite, restartable sequence of (index, text)
// windows. Carriage returns are collapsed to line feeds before windowing so
// platform newline encodings do not move chunk boundaries. Windows are
// measured in runes, never splitting a multi-byte character. They are
// trimmed of surrounding whitespace; windows that trim to nothing are
// dropped, and indices stay dense over the emitted chunks.
func (s *Splitter) Chunks(text string) iter.Seq2[int, string] {
	normalised := []rune(strings.ReplaceAll(text, "\r", "\n"))

	return func(yield func(int, string) bool) {
		i, idx := 0, 0
		for i < len(normalised) {
			end := i + s.chunkSize
			if end > len(normalised) {
				end = len(normalised)
			}

			window := strings.TrimSpace(string(normalised[i:end]))
			if window != "" {
				if !yield(idx, window) {
					return
				}
				idx++
			}

			// Escape valve: a misconfigured overlap would otherwise
			// never advance the window.
			if s.chunkSize <= s.overlap {
				return
			}
			i += s.chunkSize - s.overlap
		}
	}
}

// Split materialises Chunks into a slice. The emitted chunk at position n
// carries index n.
func (s *Splitter) Split(text string) []string {
	var chunks []string
	for _, chunk := range s.Chunks(text) {
		chunks = append(chunks, chunk)
	}
	return chunks
}
