package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dimcheck/internal/config"
	"dimcheck/ports"

	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req["model"])

		w.WriteHeader(status)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(config.VisionConfig{
		APIKey:    "test-key",
		Model:     "test-model",
		BaseURL:   baseURL,
		MaxTokens: 500,
		TimeoutMs: 5000,
	})
}

func TestExtractDimensions(t *testing.T) {
	srv := stubServer(t, http.StatusOK, `{"dimensions": [24, 12]}`)
	defer srv.Close()

	dims, err := testClient(srv.URL).ExtractDimensions(context.Background(), ports.ExtractionItem{
		FileName: "side-table.jpg",
		ImageURL: "https://example.com/side-table.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, []float64{24, 12}, dims)
}

func TestExtractDimensionsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ExtractDimensions(context.Background(), ports.ExtractionItem{
		FileName: "side-table.jpg",
		ImageURL: "https://example.com/side-table.jpg",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 429")
}

func TestExtractDimensionsNoImage(t *testing.T) {
	_, err := testClient("http://unused").ExtractDimensions(context.Background(), ports.ExtractionItem{
		FileName: "side-table.jpg",
	})
	require.Error(t, err)
}
