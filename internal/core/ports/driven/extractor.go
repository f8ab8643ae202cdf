package driven

import "context"

// PageExtractor yields page text from a corpus file. Implementations open
// and close the file per call so that ingesting a large document keeps a
// flat memory profile (one page's working set at a time).
type PageExtractor interface {
	// PageCount returns the number of pages in the file.
	PageCount(ctx context.Context, path string) (int, error)

	// ExtractPage returns the raw text of one 1-based page.
	ExtractPage(ctx context.Context, path string, page int) (string, error)

	// Supports reports whether this extractor handles the given file path.
	Supports(path string) bool
}
