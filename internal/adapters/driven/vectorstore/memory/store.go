// Package memory provides an in-memory vector store for tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store keeps records in a map guarded by a RWMutex. Semantics mirror the
// SQLite store: Add upserts, Query is an exhaustive cosine scan.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.VectorRecord
}

// NewStore creates an empty in-memory vector store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.VectorRecord),
	}
}

// Add inserts or replaces records.
func (s *Store) Add(_ context.Context, records []domain.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("%w: record id is empty", domain.ErrInvalidInput)
		}
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("%w: record %s has no embedding", domain.ErrInvalidInput, rec.ID)
		}
		s.records[rec.ID] = rec
	}
	return nil
}

// Query returns the k nearest records by cosine distance, ascending.
func (s *Store) Query(_ context.Context, embedding []float32, k int, filter driven.QueryFilter) (*domain.QueryResult, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: query embedding is empty", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return &domain.QueryResult{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		rec      domain.VectorRecord
		distance float64
	}

	var matches []scored
	for _, rec := range s.records {
		if !matchesFilter(rec.Metadata, filter) {
			continue
		}
		if len(rec.Embedding) != len(embedding) {
			continue
		}
		matches = append(matches, scored{rec: rec, distance: cosineDistance(embedding, rec.Embedding)})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].rec.ID < matches[j].rec.ID
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	result := &domain.QueryResult{
		Documents: make([]string, len(matches)),
		Metadatas: make([]domain.ChunkMetadata, len(matches)),
		Distances: make([]float64, len(matches)),
		IDs:       make([]string, len(matches)),
	}
	for i, m := range matches {
		result.Documents[i] = m.rec.Content
		result.Metadatas[i] = m.rec.Metadata
		result.Distances[i] = m.distance
		result.IDs[i] = m.rec.ID
	}
	return result, nil
}

// Count returns the number of stored records.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// DeleteCollection removes all records.
func (s *Store) DeleteCollection(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]domain.VectorRecord)
	return nil
}

// IsReady reports whether the store holds at least one record.
func (s *Store) IsReady(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) > 0
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func matchesFilter(meta domain.ChunkMetadata, filter driven.QueryFilter) bool {
	for key, want := range filter {
		switch key {
		case "doc_id":
			if meta.DocID != want {
				return false
			}
		case "page":
			if strconv.Itoa(meta.Page) != want {
				return false
			}
		case "chunk_id":
			if meta.ChunkID != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
