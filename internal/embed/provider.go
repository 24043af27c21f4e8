// Package embed defines the embedding contract the index builds against: an
// external service mapping text to fixed-width dense vectors, batchable and
// safe for concurrent use. The service itself runs out of process; this
// package only speaks to it.
package embed

import "context"

// EmbedMode selects the encoding flavor. Asymmetric retrieval models encode
// search queries and indexed passages differently, so callers say which side
// of the search they are embedding.
type EmbedMode string

const (
	EmbedModeQuery   EmbedMode = "query"
	EmbedModePassage EmbedMode = "passage"
)

// DefaultDimensions is the output width of the default sentence-transformer
// embedder (BGE-small-en-v1.5), shared by MockProvider and HTTPProvider's
// zero-value default.
const DefaultDimensions = 384

// Provider maps text to dense vectors. Implementations must return one
// vector per input, in input order, and tolerate concurrent Embed calls.
type Provider interface {
	Embed(ctx context.Context, texts []string, mode EmbedMode) ([][]float32, error)

	// Dimensions returns the width of every vector Embed produces.
	Dimensions() int

	// Close releases anything the provider holds open.
	Close() error
}
