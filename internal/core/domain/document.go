package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Chunk is the unit of retrieval: a bounded span of one page's text.
type Chunk struct {
	// ID is the deterministic identifier, see ChunkID.
	ID string

	// DocID is the owning document's identifier.
	DocID string

	// Page is the 1-based page number the span came from.
	Page int

	// Content is the chunk text.
	Content string
}

// ChunkID builds the deterministic chunk identifier:
// {document-id-without-extension}_{1-based page}_{2-digit zero-padded index}.
// Identical inputs always yield identical identifiers, so re-ingesting the
// same corpus reproduces the same IDs.
func ChunkID(docID string, page, index int) string {
	base := strings.TrimSuffix(docID, filepath.Ext(docID))
	return fmt.Sprintf("%s_%d_%02d", base, page, index)
}
