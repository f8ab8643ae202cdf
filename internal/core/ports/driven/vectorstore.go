package driven

import (
	"context"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

// QueryFilter restricts a similarity query to records whose metadata matches
// every key/value pair. A nil filter matches everything.
type QueryFilter map[string]string

// VectorStore is a persisted similarity index over guideline chunks.
// The distance metric is fixed to cosine. One ingestion process owns the
// write path; reads may interleave with each other freely.
type VectorStore interface {
	// Add inserts records into the collection. Re-adding an existing id is
	// backend-defined (upsert for the SQLite backend); idempotent ingestion
	// is achieved by a prior DeleteCollection.
	Add(ctx context.Context, records []domain.VectorRecord) error

	// Query returns the k nearest records by cosine distance, ascending.
	// The result's four slices are parallel and equal length.
	Query(ctx context.Context, embedding []float32, k int, filter QueryFilter) (*domain.QueryResult, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// DeleteCollection removes the collection and all of its records.
	DeleteCollection(ctx context.Context) error

	// IsReady reports whether the store holds at least one record. It never
	// returns an error: an uninitialised or broken backend reads as false.
	IsReady(ctx context.Context) bool

	// Close releases resources.
	Close() error
}
