// Package textfile provides a page extractor for plain-text corpus files.
// Pages are form-feed separated; a file with no form feeds is one page.
// It exists for corpus fixtures and for guideline excerpts distributed as
// text rather than PDF.
package textfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extractor reads page text from .txt and .md files.
type Extractor struct{}

// New creates a text page extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the path has a .txt or .md extension.
func (e *Extractor) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".txt" || ext == ".md"
}

// PageCount returns the number of form-feed separated pages.
func (e *Extractor) PageCount(ctx context.Context, path string) (int, error) {
	pages, err := e.pages(ctx, path)
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// ExtractPage returns the text of one 1-based page.
func (e *Extractor) ExtractPage(ctx context.Context, path string, page int) (string, error) {
	pages, err := e.pages(ctx, path)
	if err != nil {
		return "", err
	}
	if page < 1 || page > len(pages) {
		return "", fmt.Errorf("page %d out of range (1..%d)", page, len(pages))
	}
	return pages[page-1], nil
}

// pages reads and splits the whole file. Text corpus files are small, so
// re-reading per call keeps the same open/close discipline as the PDF
// extractor without a cache to invalidate.
func (e *Extractor) pages(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return strings.Split(string(data), "\f"), nil
}
