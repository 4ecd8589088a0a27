package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelink/backend/internal/domain"
)

func newHFClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		Provider: ProviderHuggingFace,
		APIKey:   "test-key",
		Model:    "sentence-transformers/all-MiniLM-L6-v2",
		BaseURL:  srv.URL,
	}, nil)
}

func TestEmbedHuggingFace(t *testing.T) {
	t.Run("flat vector response", func(t *testing.T) {
		client := newHFClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.URL.Path, "/pipeline/feature-extraction/")
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "fresh tomatoes", payload["inputs"])

			json.NewEncoder(w).Encode([]float64{0.1, 0.2, 0.3})
		})

		vec, err := client.Embed(context.Background(), "fresh tomatoes")
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	})

	t.Run("batch vector response", func(t *testing.T) {
		client := newHFClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([][]float64{{0.4, 0.5}})
		})

		vec, err := client.Embed(context.Background(), "rice")
		require.NoError(t, err)
		assert.Equal(t, []float64{0.4, 0.5}, vec)
	})

	t.Run("retries while model loads", func(t *testing.T) {
		var calls atomic.Int32
		client := newHFClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			json.NewEncoder(w).Encode([]float64{0.9})
		})

		vec, err := client.Embed(context.Background(), "wheat")
		require.NoError(t, err)
		assert.Equal(t, []float64{0.9}, vec)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("non-retryable status fails immediately", func(t *testing.T) {
		var calls atomic.Int32
		client := newHFClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.Embed(context.Background(), "wheat")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmbeddingFailure)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("malformed response shape", func(t *testing.T) {
		client := newHFClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"oops"}`))
		})

		_, err := client.Embed(context.Background(), "wheat")
		assert.ErrorIs(t, err, domain.ErrEmbeddingFailure)
	})
}

func TestEmbedOpenAI(t *testing.T) {
	t.Run("successful embedding", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/embeddings", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "text-embedding-3-small", payload["model"])

			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"embedding": []float64{0.7, 0.8}}},
			})
		}))
		defer srv.Close()

		client := NewClient(Config{
			Provider: ProviderOpenAI,
			APIKey:   "sk-test",
			Model:    "text-embedding-3-small",
			BaseURL:  srv.URL,
		}, nil)

		vec, err := client.Embed(context.Background(), "fresh tomatoes")
		require.NoError(t, err)
		assert.Equal(t, []float64{0.7, 0.8}, vec)
	})

	t.Run("missing API key", func(t *testing.T) {
		client := NewClient(Config{Provider: ProviderOpenAI, Model: "text-embedding-3-small"}, nil)

		_, err := client.Embed(context.Background(), "rice")
		assert.ErrorIs(t, err, domain.ErrEmbeddingFailure)
	})

	t.Run("empty data array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		}))
		defer srv.Close()

		client := NewClient(Config{Provider: ProviderOpenAI, APIKey: "sk-test", BaseURL: srv.URL}, nil)

		_, err := client.Embed(context.Background(), "rice")
		assert.ErrorIs(t, err, domain.ErrEmbeddingFailure)
	})
}

func TestEmbedValidation(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		client := NewClient(Config{Provider: ProviderHuggingFace}, nil)

		_, err := client.Embed(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("disabled provider", func(t *testing.T) {
		client := NewClient(Config{Provider: ProviderFuzzyOnly}, nil)

		_, err := client.Embed(context.Background(), "rice")
		assert.ErrorIs(t, err, domain.ErrEmbeddingDisabled)
	})
}
