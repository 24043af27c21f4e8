package pipeline

import (
	"context"
	"fmt"

	"github.com/bivav/code-cognitio/internal/embed"
	"github.com/bivav/code-cognitio/internal/lexical"
	"github.com/bivav/code-cognitio/internal/vectorindex"
)

// BuildResult is the outcome of a full build operation: the vector index
// ready to persist, and the lexical index when enabled (nil otherwise).
type BuildResult struct {
	VectorIndex  *vectorindex.Index
	LexicalIndex *lexical.Index
}

// Build runs the full ingest-to-index pipeline: walk + dispatch + extract +
// normalize + chunk (Extract), then embed every chunk into the vector
// index's three collections, and, when cfg.EnableLexicalIndex is set, build
// the adjunct bleve keyword index over the same chunks. Embedder failures
// abort the build without persisting anything; the caller is responsible for
// calling Save only after Build returns successfully.
func (p *Pipeline) Build(ctx context.Context, roots []string, provider embed.Provider, batchSize int) (*BuildResult, error) {
	chunks, err := p.Extract(ctx, roots)
	if err != nil {
		return nil, fmt.Errorf("extracting chunks: %w", err)
	}

	idx := vectorindex.New(p.Config.EmbedderIdentifier, provider.Dimensions())
	if err := idx.Build(ctx, provider, chunks, batchSize); err != nil {
		return nil, fmt.Errorf("building vector index: %w", err)
	}

	result := &BuildResult{VectorIndex: idx}

	if p.Config.EnableLexicalIndex {
		lex, err := lexical.Build(ctx, p.Config.DataDir, idx.All.Chunks)
		if err != nil {
			return nil, fmt.Errorf("building lexical index: %w", err)
		}
		result.LexicalIndex = lex
	}

	return result, nil
}
