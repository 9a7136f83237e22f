package openaiEmbedding

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeddingServer answers with one vector per input, out of order, first value = input index.
func embeddingServer(t *testing.T, status int, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if gotBody != nil {
			*gotBody = body
		}
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"error":{"message":"nope","type":"server_error"}}`)
			return
		}
		inputs, _ := body["input"].([]any)
		data := make([]map[string]any, 0, len(inputs))
		for i := len(inputs) - 1; i >= 0; i-- {
			data = append(data, map[string]any{"object": "embedding", "index": i, "embedding": []float64{float64(i), 0.5}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  body["model"],
			"data":   data,
			"usage":  map[string]any{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestEmbedDocuments_KeepsInputOrder(t *testing.T) {
	var body map[string]any
	srv := embeddingServer(t, http.StatusOK, &body)
	defer srv.Close()

	c := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: "text-embedding-3-small", Dimensions: 2})
	vectors, err := c.EmbedDocuments(context.Background(), []string{"a", "b", "c"})

	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for i, v := range vectors {
		assert.Equal(t, float32(i), v[0])
	}
	assert.Equal(t, "text-embedding-3-small", body["model"])
	assert.EqualValues(t, 2, body["dimensions"])
	assert.Equal(t, "text-embedding-3-small", c.Model())
}

func TestEmbedQuery(t *testing.T) {
	srv := embeddingServer(t, http.StatusOK, nil)
	defer srv.Close()

	c := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: "m"})
	v, err := c.EmbedQuery(context.Background(), "question")

	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0.5}, v)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	}
	for _, tt := range tests {
		srv := embeddingServer(t, tt.status, nil)
		c := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: "m"})
		_, err := c.EmbedDocuments(context.Background(), []string{"a"})
		srv.Close()

		require.Error(t, err)
		assert.Equal(t, tt.retryable, c.IsRetryable(err), "status %d", tt.status)
	}
}
