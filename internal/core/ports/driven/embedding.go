package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations must check their credential BEFORE any network call and
// return domain.ErrMissingAPIKey when it is absent, so callers can degrade
// instead of surfacing a transport failure. Service failures are never
// retried here; the caller owns the isolation policy.
type EmbeddingService interface {
	// Embed generates a vector embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	// Output length and order exactly match the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
