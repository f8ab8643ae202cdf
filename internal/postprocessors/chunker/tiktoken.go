package chunker

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding is the BPE encoding used for chunk sizing. cl100k_base matches
// the embedding model's tokenizer, so window sizes line up with what the
// embedding service actually sees.
const Encoding = "cl100k_base"

// tiktokenTokenizer adapts a tiktoken encoding to the Tokenizer interface.
type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken returns a Tokenizer backed by the cl100k_base encoding.
func NewTiktoken() (Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", Encoding, err)
	}
	return &tiktokenTokenizer{enc: enc}, nil
}

func (t *tiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}
