package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProviderEmbedPostsAndDecodes(t *testing.T) {
	var gotReq httpEmbedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		resp := httpEmbedResponse{Embeddings: make([][]float32, len(gotReq.Texts))}
		for i := range resp.Embeddings {
			resp.Embeddings[i] = []float32{1, 2, 3}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, 3)
	vecs, err := p.Embed(context.Background(), []string{"a", "b"}, EmbedModeQuery)
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 2, 3}, vecs[0])
	assert.Equal(t, "query", gotReq.Mode)
	assert.Equal(t, []string{"a", "b"}, gotReq.Texts)
}

func TestHTTPProviderEmbedRejectsMismatchedVectorCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(httpEmbedResponse{Embeddings: [][]float32{{1}}})
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, 1)
	_, err := p.Embed(context.Background(), []string{"a", "b"}, EmbedModePassage)
	assert.Error(t, err)
}

func TestHTTPProviderEmbedSurfacesNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewHTTPProvider(server.URL, 1)
	_, err := p.Embed(context.Background(), []string{"a"}, EmbedModePassage)
	assert.Error(t, err)
}

func TestNewHTTPProviderDefaultsDimensions(t *testing.T) {
	p := NewHTTPProvider("http://example.invalid", 0)
	assert.Equal(t, DefaultDimensions, p.Dimensions())
}
