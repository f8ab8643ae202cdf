package chunker

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

// wordTokenizer treats each whitespace-separated word as one token, which
// makes window positions easy to reason about in tests.
type wordTokenizer struct{}

func (wordTokenizer) Encode(text string) []int {
	words := strings.Fields(text)
	tokens := make([]int, len(words))
	for i := range words {
		tokens[i] = i
	}
	return tokens
}

func (wordTokenizer) Decode(tokens []int) string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = fmt.Sprintf("w%d", tok)
	}
	return strings.Join(words, " ")
}

// words builds an input of n distinct single-word tokens.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{"defaults", nil, false},
		{"valid custom", []Option{WithChunkSize(100), WithOverlap(20)}, false},
		{"zero overlap", []Option{WithChunkSize(10), WithOverlap(0)}, false},
		{"chunk size zero", []Option{WithChunkSize(0)}, true},
		{"negative overlap", []Option{WithOverlap(-1)}, true},
		{"overlap equals size", []Option{WithChunkSize(50), WithOverlap(50)}, true},
		{"overlap exceeds size", []Option{WithChunkSize(50), WithOverlap(80)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(wordTokenizer{}, tt.opts...)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidChunking) {
					t.Errorf("expected ErrInvalidChunking, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSplit_SingleChunkWhenTextFits(t *testing.T) {
	s, err := New(wordTokenizer{}, WithChunkSize(100), WithOverlap(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "  a short guideline passage  "
	chunks := s.Split(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "a short guideline passage" {
		t.Errorf("expected trimmed input back, got %q", chunks[0])
	}
}

func TestSplit_WindowBoundaries(t *testing.T) {
	// chunk_size=800, overlap=120, 1000 tokens: exactly two windows,
	// tokens [0,800) and [680,1000).
	s, err := New(wordTokenizer{}, WithChunkSize(800), WithOverlap(120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks := s.Split(words(1000))
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	first := strings.Fields(chunks[0])
	if len(first) != 800 || first[0] != "w0" || first[799] != "w799" {
		t.Errorf("first window wrong: %d tokens, ends %q", len(first), first[len(first)-1])
	}

	second := strings.Fields(chunks[1])
	if len(second) != 320 || second[0] != "w680" || second[319] != "w999" {
		t.Errorf("second window wrong: %d tokens, starts %q", len(second), second[0])
	}
}

func TestSplit_Termination(t *testing.T) {
	// A grid of sizes and overlaps against varying input lengths; the walk
	// must always finish and always cover the final token.
	for _, size := range []int{1, 2, 7, 50} {
		for _, overlap := range []int{0, 1, size - 1} {
			if overlap < 0 || overlap >= size {
				continue
			}
			for _, total := range []int{0, 1, size, size + 1, 3*size + 2} {
				s, err := New(wordTokenizer{}, WithChunkSize(size), WithOverlap(overlap))
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				chunks := s.Split(words(total))
				if total == 0 {
					if len(chunks) != 0 {
						t.Errorf("size=%d overlap=%d total=0: expected no chunks", size, overlap)
					}
					continue
				}
				if len(chunks) == 0 {
					t.Errorf("size=%d overlap=%d total=%d: expected chunks", size, overlap, total)
					continue
				}
				last := strings.Fields(chunks[len(chunks)-1])
				if last[len(last)-1] != fmt.Sprintf("w%d", total-1) {
					t.Errorf("size=%d overlap=%d total=%d: final token not covered, last window ends %q",
						size, overlap, total, last[len(last)-1])
				}
			}
		}
	}
}

func TestSplit_WhitespaceOnly(t *testing.T) {
	s, err := New(wordTokenizer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks := s.Split("   \n\t  "); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace input, got %v", chunks)
	}
}
