package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridia-labs/tirads-cli/internal/core/domain"
)

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"birinci", "ikinci"}, req.Input)

		// Deliberately out of order; the adapter must reorder by index.
		resp := map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{0.2, 0.2}, "index": 1},
				{"embedding": []float64{0.1, 0.1}, "index": 0},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})

	got, err := svc.EmbedBatch(context.Background(), []string{"birinci", "ikinci"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, []float32{0.1, 0.1}, got[0])
	assert.Equal(t, []float32{0.2, 0.2}, got[1])
}

func TestEmbed_SingleText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{1, 2, 3}, "index": 0},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})

	got, err := svc.Embed(context.Background(), "metin")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, got)
}

func TestEmbedBatch_MissingKeySkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})

	_, err := svc.EmbedBatch(context.Background(), []string{"metin"})

	assert.True(t, errors.Is(err, domain.ErrMissingAPIKey))
	assert.False(t, called)
}

func TestEmbedBatch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Incorrect API key provided", "type": "invalid_request_error"},
		})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{APIKey: "bad-key", BaseURL: server.URL})

	_, err := svc.EmbedBatch(context.Background(), []string{"metin"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{1}, "index": 0},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := svc.EmbedBatch(context.Background(), []string{"bir", "iki"})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestPing_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{APIKey: "bad-key", BaseURL: server.URL})

	err := svc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestPing_MissingKeySkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})

	err := svc.Ping(context.Background())
	assert.True(t, errors.Is(err, domain.ErrMissingAPIKey))
	assert.False(t, called)
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc := NewEmbeddingService(Config{APIKey: "k"})

	assert.Equal(t, "text-embedding-3-small", svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestNewEmbeddingService_LargeModelDimensions(t *testing.T) {
	svc := NewEmbeddingService(Config{APIKey: "k", Model: "text-embedding-3-large"})

	assert.Equal(t, 3072, svc.Dimensions())
}
