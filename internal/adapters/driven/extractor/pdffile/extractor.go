// Package pdffile provides a page extractor for PDF corpus files.
package pdffile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// Extractor reads page text from PDF files. Every call opens and closes the
// file so ingesting a large guideline keeps one page's working set in memory
// at a time.
type Extractor struct{}

// New creates a PDF page extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the path has a .pdf extension.
func (e *Extractor) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// PageCount opens the file only to read the page count.
func (e *Extractor) PageCount(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	return r.NumPage(), nil
}

// ExtractPage opens the file, reads one 1-based page and closes it.
func (e *Extractor) ExtractPage(ctx context.Context, path string, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if page < 1 || page > r.NumPage() {
		return "", fmt.Errorf("page %d out of range (1..%d)", page, r.NumPage())
	}

	p := r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract page %d: %w", page, err)
	}
	return text, nil
}
