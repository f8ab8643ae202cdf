// Package chunker provides a token-window text splitter with overlap.
package chunker

import (
	"fmt"
	"strings"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

// DefaultChunkSize is the default window size in tokens.
const DefaultChunkSize = 800

// DefaultOverlap is the default overlap between consecutive windows in tokens.
const DefaultOverlap = 120

// Tokenizer converts between text and token ids. The real implementation
// wraps the cl100k_base encoding; tests substitute a word tokenizer.
type Tokenizer interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

// Splitter slides a fixed token window across text. Window size and overlap
// are validated at construction: size >= 1 and 0 <= overlap < size, otherwise
// the window step would be zero or negative and the walk would never finish.
type Splitter struct {
	tok       Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the window size in tokens.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		s.chunkSize = size
	}
}

// WithOverlap sets the overlap between windows in tokens.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// New creates a splitter over the given tokenizer.
func New(tok Tokenizer, opts ...Option) (*Splitter, error) {
	s := &Splitter{
		tok:       tok,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize < 1 {
		return nil, fmt.Errorf("%w: chunk size %d", domain.ErrInvalidChunking, s.chunkSize)
	}
	if s.overlap < 0 || s.overlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d for chunk size %d",
			domain.ErrInvalidChunking, s.overlap, s.chunkSize)
	}

	return s, nil
}

// Split divides text into overlapping token windows. Text that fits in one
// window is returned as a single chunk. The final partial window is always
// emitted before the walk stops.
func (s *Splitter) Split(text string) []string {
	tokens := s.tok.Encode(text)

	if len(tokens) <= s.chunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	var chunks []string
	start := 0
	for start < len(tokens) {
		end := start + s.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}

		chunk := strings.TrimSpace(s.tok.Decode(tokens[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		start = end - s.overlap

		// The remaining tokens are already covered by the overlap of the
		// window just emitted; continuing would re-emit a strict suffix.
		if start >= len(tokens)-s.overlap {
			break
		}
	}

	return chunks
}

// ChunkSize returns the configured window size in tokens.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap in tokens.
func (s *Splitter) Overlap() int {
	return s.overlap
}
