package services

import (
	"context"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
	"github.com/veridia-labs/tirads-cli/internal/core/ports/driven"
)

// mockEmbedder returns a fixed vector for every text and records the
// queries it was asked to embed.
type mockEmbedder struct {
	vector  []float32
	err     error
	queries []string
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.queries = append(m.queries, text)
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		m.queries = append(m.queries, text)
		out[i] = m.vector
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int   { return len(m.vector) }
func (m *mockEmbedder) ModelName() string { return "mock-embedder" }
func (m *mockEmbedder) Close() error      { return nil }

// mockStore serves a canned query result and records Add calls.
type mockStore struct {
	result   *domain.QueryResult
	queryErr error
	added    []domain.VectorRecord
	deleted  bool
	lastK    int
}

var _ driven.VectorStore = (*mockStore)(nil)

func (m *mockStore) Add(_ context.Context, records []domain.VectorRecord) error {
	m.added = append(m.added, records...)
	return nil
}

func (m *mockStore) Query(_ context.Context, _ []float32, k int, _ driven.QueryFilter) (*domain.QueryResult, error) {
	m.lastK = k
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if m.result == nil {
		return &domain.QueryResult{}, nil
	}
	return m.result, nil
}

func (m *mockStore) Count(_ context.Context) (int, error) {
	return len(m.added), nil
}

func (m *mockStore) DeleteCollection(_ context.Context) error {
	m.deleted = true
	m.added = nil
	return nil
}

func (m *mockStore) IsReady(_ context.Context) bool { return len(m.added) > 0 }
func (m *mockStore) Close() error                   { return nil }

// mockChat replays a fixed completion and captures the conversation.
type mockChat struct {
	response string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

var _ driven.ChatService = (*mockChat)(nil)

func (m *mockChat) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.messages = messages
	m.opts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockChat) ModelName() string { return "mock-chat" }
func (m *mockChat) Close() error      { return nil }

// queryResultOf builds a parallel-array result from rows of
// (docID, page, chunkID, content, distance).
func queryResultOf(rows ...resultRow) *domain.QueryResult {
	r := &domain.QueryResult{}
	for _, row := range rows {
		r.Documents = append(r.Documents, row.content)
		r.Metadatas = append(r.Metadatas, domain.ChunkMetadata{
			DocID:   row.docID,
			Page:    row.page,
			ChunkID: row.chunkID,
		})
		r.Distances = append(r.Distances, row.distance)
		r.IDs = append(r.IDs, row.chunkID)
	}
	return r
}

type resultRow struct {
	docID    string
	page     int
	chunkID  string
	content  string
	distance float64
}
