// Package extract defines the common contract every language extractor
// implements: a pure function from a file's bytes to an ordered list of
// Chunks.
package extract

import (
	"context"

	"github.com/bivav/code-cognitio/internal/chunk"
)

// Extractor parses one file's contents into Chunks, preserving source order.
// A parse failure is reported as a returned error and the caller
// (internal/pipeline) logs and skips the file; extraction errors never abort
// a whole build.
type Extractor interface {
	Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error)

func (f ExtractorFunc) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	return f(ctx, path, source)
}
