// Package generic implements the last-resort fallback extractor: files the
// dispatcher cannot otherwise resolve become a single generic_file Chunk
// carrying the file's raw text, so nothing the walker yields is silently
// dropped from the index.
package generic

import (
	"context"
	"path/filepath"

	"github.com/bivav/code-cognitio/internal/chunk"
)

// Extractor implements extract.Extractor as the last-resort fallback.
type Extractor struct{}

// New returns a generic fallback extractor.
func New() *Extractor { return &Extractor{} }

// Extract implements extract.Extractor. It never fails on content it
// cannot parse since it does not parse anything; only the leading read of
// source bytes done by the caller can fail before this point.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	name := filepath.Base(path)
	c := chunk.New(chunk.KindGenericFile, name, path, 1, "")
	c.RawText = string(source)
	c.SetReadableName(name)
	return []*chunk.Chunk{c}, nil
}
