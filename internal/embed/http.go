package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPProvider calls an external embedding service over HTTP:
// `{"texts": [...], "mode": ...}` in, `{"embeddings": [...]}` out. The
// endpoint is config-driven; this process never manages the embedder's
// lifecycle.
type HTTPProvider struct {
	endpoint   string
	dimensions int
	client     *http.Client
}

// NewHTTPProvider returns a Provider that POSTs to endpoint exactly as given
// (the configured URL includes the route, e.g. http://localhost:8121/embed).
// dimensions is the embedder's known output width; vectorindex.Load compares
// it with the persisted index's dimension and logs a warning on mismatch.
func NewHTTPProvider(endpoint string, dimensions int) *HTTPProvider {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &HTTPProvider{
		endpoint:   endpoint,
		dimensions: dimensions,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

type httpEmbedRequest struct {
	Texts []string `json:"texts"`
	Mode  string   `json:"mode"`
}

type httpEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed implements Provider by POSTing texts and mode to the configured
// endpoint and decoding its embeddings array.
func (p *HTTPProvider) Embed(ctx context.Context, texts []string, mode EmbedMode) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(httpEmbedRequest{Texts: texts, Mode: string(mode)})
	if err != nil {
		return nil, fmt.Errorf("encoding embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding server returned status %d", resp.StatusCode)
	}

	var decoded httpEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding embed response: %w", err)
	}
	if len(decoded.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding server returned %d vectors for %d inputs", len(decoded.Embeddings), len(texts))
	}
	return decoded.Embeddings, nil
}

// Dimensions returns the configured embedding width.
func (p *HTTPProvider) Dimensions() int { return p.dimensions }

// Close is a no-op: the HTTP client owns no resources that outlive a request.
func (p *HTTPProvider) Close() error { return nil }
