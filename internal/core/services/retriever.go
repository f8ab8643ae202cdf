package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
	"github.com/veridia-labs/tirads-cli/internal/logger"
)

// DefaultRelevanceThreshold is the minimum relevance (1 - cosine distance)
// a candidate must reach to be kept.
const DefaultRelevanceThreshold = 0.5

// DefaultTopK is the default number of chunks returned per retrieval.
const DefaultTopK = 6

// RetrievalQuery describes one retrieval request. The classification label,
// action and characteristics come from the upstream scoring engine and are
// folded into the query text verbatim.
type RetrievalQuery struct {
	// Base is the free-text query stem.
	Base string

	// TRLevel is the TI-RADS classification label, e.g. "TR4".
	TRLevel string

	// Action expands to its fixed vocabulary.
	Action domain.Action

	// Characteristics are rendered as "key: value" terms.
	Characteristics domain.NoduleCharacteristics

	// TopK caps the result length. Zero means DefaultTopK.
	TopK int
}

// Retriever answers retrieval requests against the vector store. Each
// guideline partition is queried with an independent call so corpus imbalance
// between sources cannot starve a partition of evidence.
type Retriever struct {
	store     driven.VectorStore
	embedder  driven.EmbeddingService
	threshold float64
	topK      int
}

// RetrieverOption configures the retriever.
type RetrieverOption func(*Retriever)

// WithRelevanceThreshold overrides the relevance cut-off.
func WithRelevanceThreshold(threshold float64) RetrieverOption {
	return func(r *Retriever) {
		r.threshold = threshold
	}
}

// WithTopK overrides the result cap used when a query does not set its own.
// Values below 1 are ignored.
func WithTopK(topK int) RetrieverOption {
	return func(r *Retriever) {
		if topK > 0 {
			r.topK = topK
		}
	}
}

// NewRetriever creates a retriever over the given store and embedder.
// The embedder may be nil or unconfigured; retrieval then degrades to
// empty results instead of failing.
func NewRetriever(store driven.VectorStore, embedder driven.EmbeddingService, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		store:     store,
		embedder:  embedder,
		threshold: DefaultRelevanceThreshold,
		topK:      DefaultTopK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns up to q.TopK chunks for the query, ordered by descending
// relevance. When partition is a valid guideline, only chunks whose document
// identifier matches that partition's aliases are returned. The raw candidate
// set is twice TopK so threshold and partition filtering have headroom; fewer
// than TopK results (or none) is a normal outcome.
func (r *Retriever) Retrieve(ctx context.Context, q RetrievalQuery, partition domain.Guideline) ([]domain.RetrievedChunk, error) {
	topK := q.TopK
	if topK <= 0 {
		topK = r.topK
	}

	enhanced := r.buildQuery(q)
	logger.Debug("Retrieval query (%s): %q", partition, enhanced)

	if r.embedder == nil {
		logger.Warn("Retrieval skipped: no embedding service configured")
		return []domain.RetrievedChunk{}, nil
	}

	embedding, err := r.embedder.Embed(ctx, enhanced)
	if err != nil {
		if errors.Is(err, domain.ErrMissingAPIKey) {
			logger.Warn("Retrieval skipped: %v", err)
			return []domain.RetrievedChunk{}, nil
		}
		return nil, fmt.Errorf("embed query: %w", err)
	}

	result, err := r.store.Query(ctx, embedding, topK*2, nil)
	if err != nil {
		return nil, fmt.Errorf("query vector store: %w", err)
	}

	chunks := make([]domain.RetrievedChunk, 0, result.Len())
	for i := 0; i < result.Len(); i++ {
		chunk := domain.NewRetrievedChunk(result.Documents[i], result.Metadatas[i], result.Distances[i])
		if chunk.Relevance < r.threshold {
			continue
		}
		if partition.IsValid() && !partition.Matches(chunk.DocID) {
			continue
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) > topK {
		chunks = chunks[:topK]
	}

	logger.Debug("Retrieval (%s): %d of %d candidates kept", partition, len(chunks), result.Len())
	return chunks, nil
}

// buildQuery concatenates the query stem with the classification label, the
// action vocabulary and each characteristic as a "key: value" term.
func (r *Retriever) buildQuery(q RetrievalQuery) string {
	parts := []string{q.Base}

	if q.TRLevel != "" {
		parts = append(parts, "TI-RADS classification: "+q.TRLevel)
	}
	if terms := q.Action.QueryTerms(); terms != "" {
		parts = append(parts, terms)
	}
	parts = append(parts, q.Characteristics.Pairs()...)

	return strings.Join(parts, " ")
}

// FormatContext renders retrieved chunks into the evidence block handed to
// the chat service. Returns "" for an empty chunk list.
func FormatContext(chunks []domain.RetrievedChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = fmt.Sprintf("Source %d [%s, Page %d]:\n%s", i+1, chunk.DocID, chunk.Page, chunk.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}
