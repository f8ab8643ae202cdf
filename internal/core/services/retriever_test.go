package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

func TestRetrieve_ThresholdFiltering(t *testing.T) {
	store := &mockStore{result: queryResultOf(
		resultRow{"turkey.pdf", 3, "turkey_3_00", "yüksek alaka", 0.3},  // relevance 0.7
		resultRow{"turkey.pdf", 7, "turkey_7_01", "sınırda alaka", 0.6}, // relevance 0.4
	)}
	r := NewRetriever(store, &mockEmbedder{vector: []float32{1, 0}})

	chunks, err := r.Retrieve(context.Background(), RetrievalQuery{Base: "test"}, domain.GuidelineTR)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "turkey_3_00", chunks[0].ChunkID)
	assert.InDelta(t, 0.7, chunks[0].Relevance, 1e-9)
}

func TestRetrieve_PartitionFiltering(t *testing.T) {
	store := &mockStore{result: queryResultOf(
		resultRow{"turkey.pdf", 1, "turkey_1_00", "TR içerik", 0.1},
		resultRow{"acr-tirads.pdf", 2, "acr-tirads_2_00", "US içerik", 0.1},
		resultRow{"eu-tirads.pdf", 3, "eu-tirads_3_00", "EU içerik", 0.1},
	)}
	r := NewRetriever(store, &mockEmbedder{vector: []float32{1, 0}})

	tests := []struct {
		partition domain.Guideline
		wantDoc   string
	}{
		{domain.GuidelineTR, "turkey.pdf"},
		{domain.GuidelineUS, "acr-tirads.pdf"},
		{domain.GuidelineEU, "eu-tirads.pdf"},
	}

	for _, tt := range tests {
		t.Run(string(tt.partition), func(t *testing.T) {
			chunks, err := r.Retrieve(context.Background(), RetrievalQuery{Base: "test"}, tt.partition)
			require.NoError(t, err)
			require.Len(t, chunks, 1)
			assert.Equal(t, tt.wantDoc, chunks[0].DocID)
		})
	}
}

func TestRetrieve_TopKCapAndHeadroom(t *testing.T) {
	rows := make([]resultRow, 8)
	for i := range rows {
		rows[i] = resultRow{"turkey.pdf", i + 1, domain.ChunkID("turkey.pdf", i+1, 0), "içerik", 0.1}
	}
	store := &mockStore{result: queryResultOf(rows...)}
	r := NewRetriever(store, &mockEmbedder{vector: []float32{1, 0}})

	chunks, err := r.Retrieve(context.Background(), RetrievalQuery{Base: "test", TopK: 3}, domain.GuidelineTR)
	require.NoError(t, err)

	// Raw candidate window is twice TopK, final list is capped at TopK.
	assert.Equal(t, 6, store.lastK)
	assert.Len(t, chunks, 3)
}

func TestRetrieve_ConfiguredTopK(t *testing.T) {
	rows := make([]resultRow, 8)
	for i := range rows {
		rows[i] = resultRow{"turkey.pdf", i + 1, domain.ChunkID("turkey.pdf", i+1, 0), "içerik", 0.1}
	}
	store := &mockStore{result: queryResultOf(rows...)}
	r := NewRetriever(store, &mockEmbedder{vector: []float32{1, 0}}, WithTopK(2))

	// A query without its own TopK uses the retriever's configured default.
	chunks, err := r.Retrieve(context.Background(), RetrievalQuery{Base: "test"}, domain.GuidelineTR)
	require.NoError(t, err)

	assert.Equal(t, 4, store.lastK)
	assert.Len(t, chunks, 2)
}

func TestRetrieve_MissingCredentialDegrades(t *testing.T) {
	store := &mockStore{result: queryResultOf(
		resultRow{"turkey.pdf", 1, "turkey_1_00", "içerik", 0.1},
	)}
	r := NewRetriever(store, &mockEmbedder{err: domain.ErrMissingAPIKey})

	chunks, err := r.Retrieve(context.Background(), RetrievalQuery{Base: "test"}, domain.GuidelineTR)

	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetrieve_NilEmbedderDegrades(t *testing.T) {
	r := NewRetriever(&mockStore{}, nil)

	chunks, err := r.Retrieve(context.Background(), RetrievalQuery{Base: "test"}, domain.GuidelineTR)

	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestRetrieve_QueryEnhancement(t *testing.T) {
	embedder := &mockEmbedder{vector: []float32{1, 0}}
	r := NewRetriever(&mockStore{}, embedder)

	_, err := r.Retrieve(context.Background(), RetrievalQuery{
		Base:    "tiroid nodülü",
		TRLevel: "TR4",
		Action:  domain.ActionFNA,
		Characteristics: domain.NoduleCharacteristics{
			Composition:  domain.CompositionSolid,
			Echogenicity: domain.EchogenicityHypoechoic,
		},
	}, domain.GuidelineTR)
	require.NoError(t, err)

	require.Len(t, embedder.queries, 1)
	q := embedder.queries[0]
	assert.Contains(t, q, "tiroid nodülü")
	assert.Contains(t, q, "TI-RADS classification: TR4")
	assert.Contains(t, q, "fine needle aspiration biopsy FNA cytology")
	assert.Contains(t, q, "composition: solid")
	assert.Contains(t, q, "echogenicity: hypoechoic")
}

func TestRetrieve_CustomThreshold(t *testing.T) {
	store := &mockStore{result: queryResultOf(
		resultRow{"turkey.pdf", 1, "turkey_1_00", "içerik", 0.6}, // relevance 0.4
	)}
	r := NewRetriever(store, &mockEmbedder{vector: []float32{1, 0}}, WithRelevanceThreshold(0.3))

	chunks, err := r.Retrieve(context.Background(), RetrievalQuery{Base: "test"}, domain.GuidelineTR)
	require.NoError(t, err)

	assert.Len(t, chunks, 1)
}

func TestFormatContext(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		{DocID: "turkey.pdf", Page: 3, Content: "Birinci kaynak."},
		{DocID: "eu-tirads.pdf", Page: 9, Content: "İkinci kaynak."},
	}

	got := FormatContext(chunks)

	assert.Contains(t, got, "Source 1 [turkey.pdf, Page 3]:\nBirinci kaynak.")
	assert.Contains(t, got, "Source 2 [eu-tirads.pdf, Page 9]:\nİkinci kaynak.")
	assert.Equal(t, 1, strings.Count(got, "\n\n---\n\n"))
}

func TestFormatContext_Empty(t *testing.T) {
	assert.Equal(t, "", FormatContext(nil))
}
