// Package web provides text extraction from web pages.
package web

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Default configuration values.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 10 << 20 // 10 MiB
	userAgent           = "recall-cli/1.0"
)

// Config holds configuration for the web extractor.
type Config struct {
	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// MaxBodyBytes caps how much of the response body is read (default: 10 MiB).
	MaxBodyBytes int64
}

// Extractor fetches a URL and extracts readable text from its HTML.
type Extractor struct {
	client       *http.Client
	maxBodyBytes int64
}

// New creates a new web extractor.
func New(cfg Config) *Extractor {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Extractor{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Extract fetches the page at the given URL and returns its readable text.
// Returns domain.ErrNoExtractableContent when stripping markup leaves nothing.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	text := stripHTML(string(body))
	if text == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrNoExtractableContent, url)
	}

	return text, nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
)

// stripHTML removes HTML tags and extracts readable text content.
func stripHTML(content string) string {
	// Remove script, style, noscript, head, and svg tags entirely
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")

	// Remove HTML comments
	content = htmlComments.ReplaceAllString(content, "")

	// Add newlines before block elements for readability
	content = openBlockElements.ReplaceAllString(content, "\n")

	// Add newlines after closing block elements
	content = blockElements.ReplaceAllString(content, "\n")

	// Convert <br> and <hr> to newlines
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")

	// Strip all remaining HTML tags
	content = allTags.ReplaceAllString(content, "")

	// Decode HTML entities
	content = html.UnescapeString(content)

	// Collapse multiple spaces (but preserve newlines)
	content = multiSpaces.ReplaceAllString(content, " ")

	// Collapse multiple newlines
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	// Trim each line and remove empty lines
	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
