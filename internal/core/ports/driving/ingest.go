package driving

import "context"

// IngestOptions configures one ingestion run.
type IngestOptions struct {
	// Reset deletes the existing collection before ingesting.
	Reset bool

	// ChunkSize is the target chunk size in tokens.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive chunks in tokens.
	ChunkOverlap int
}

// DocumentReport records the outcome for one document in an ingestion run.
type DocumentReport struct {
	// DocID is the filename-derived document identifier.
	DocID string

	// Pages is the number of pages processed.
	Pages int

	// Chunks is the number of chunks stored.
	Chunks int

	// Err holds the failure that stopped this document, nil on success.
	// A failed document never aborts the batch.
	Err error
}

// IngestReport summarises one ingestion run over a corpus directory.
type IngestReport struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Documents lists the per-document outcomes in processing order.
	Documents []DocumentReport

	// TotalChunks is the number of chunks stored across all documents.
	TotalChunks int

	// StoreCount is the vector store record count after the run.
	StoreCount int
}

// Failed returns the reports of documents that errored.
func (r *IngestReport) Failed() []DocumentReport {
	var failed []DocumentReport
	for _, doc := range r.Documents {
		if doc.Err != nil {
			failed = append(failed, doc)
		}
	}
	return failed
}

// Ingestor runs the document ingestion pipeline.
type Ingestor interface {
	// IngestDir processes every supported file in dir sequentially.
	// Per-document failures are recorded in the report, not returned.
	IngestDir(ctx context.Context, dir string, opts IngestOptions) (*IngestReport, error)
}
