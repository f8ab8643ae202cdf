package domain

import "math"

// ExcerptLimit is the maximum excerpt length in characters for citations.
const ExcerptLimit = 200

// ChunkMetadata is the metadata stored alongside every vector record.
type ChunkMetadata struct {
	DocID   string `json:"doc_id"`
	Page    int    `json:"page"`
	ChunkID string `json:"chunk_id"`
}

// VectorRecord is one stored row in the vector store. Embeddings are never
// mutated after write; updates are delete+reinsert.
type VectorRecord struct {
	ID        string
	Embedding []float32
	Content   string
	Metadata  ChunkMetadata
}

// QueryResult holds a ranked similarity query response as parallel,
// same-length arrays: index i across all four slices is one match.
// Distances are cosine distances in [0, 2], ordered ascending.
type QueryResult struct {
	Documents []string
	Metadatas []ChunkMetadata
	Distances []float64
	IDs       []string
}

// Len returns the number of matches.
func (r *QueryResult) Len() int {
	return len(r.IDs)
}

// RetrievedChunk is a query match enriched with a relevance score and a
// bounded excerpt for citation display. Computed per request, never persisted.
type RetrievedChunk struct {
	DocID     string
	Page      int
	ChunkID   string
	Content   string
	Relevance float64
	Excerpt   string
}

// NewRetrievedChunk builds a RetrievedChunk from one query result row.
// Relevance is 1 minus cosine distance, rounded to three decimals.
func NewRetrievedChunk(content string, meta ChunkMetadata, distance float64) RetrievedChunk {
	return RetrievedChunk{
		DocID:     meta.DocID,
		Page:      meta.Page,
		ChunkID:   meta.ChunkID,
		Content:   content,
		Relevance: math.Round((1-distance)*1000) / 1000,
		Excerpt:   Excerpt(content),
	}
}

// Excerpt returns the first ExcerptLimit characters of text with an ellipsis
// marker when truncated. The cut is rune-safe; guideline text is not ASCII.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= ExcerptLimit {
		return text
	}
	return string(runes[:ExcerptLimit]) + "..."
}
