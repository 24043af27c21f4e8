package vectorindex

import (
	"context"
	"fmt"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/embed"
)

// Index owns the three parallel collections (all/code/doc) and the
// embedder identifier they were built with.
type Index struct {
	EmbedderIdentifier string
	Dimension          int

	All  *Collection
	Code *Collection
	Doc  *Collection
}

// New returns an empty Index for the given embedder identifier/dimension.
func New(embedderIdentifier string, dimension int) *Index {
	return &Index{
		EmbedderIdentifier: embedderIdentifier,
		Dimension:          dimension,
		All:                NewCollection(dimension),
		Code:               NewCollection(dimension),
		Doc:                NewCollection(dimension),
	}
}

// TotalChunks, CodeChunks, DocChunks report collection sizes for the
// persisted metadata and the `status` introspection verb.
func (idx *Index) TotalChunks() int { return idx.All.Len() }
func (idx *Index) CodeChunks() int  { return idx.Code.Len() }
func (idx *Index) DocChunks() int   { return idx.Doc.Len() }

// ChunkByID finds a chunk by its ID in the `all` collection, for callers
// (the lexical hybrid merge) that need to resolve a keyword-only hit back to
// its full Chunk.
func (idx *Index) ChunkByID(id string) (*chunk.Chunk, bool) {
	for _, c := range idx.All.Chunks {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// EmbeddingInputFor constructs the embedding input string for a Chunk:
//   - function/method: signature + "\n" + docstring
//   - class: "class " + name + "\n" + docstring
//   - section/code_block: title + "\n" + content
//   - otherwise: name + "\n" + content; empty strings fall back to any
//     non-empty raw text.
func EmbeddingInputFor(c *chunk.Chunk) string {
	var s string
	switch c.Kind {
	case chunk.KindFunction, chunk.KindMethod:
		s = c.Signature() + "\n" + c.Docstring()
	case chunk.KindClass:
		s = "class " + c.Name + "\n" + c.Docstring()
	case chunk.KindSection, chunk.KindCodeBlock:
		s = c.Title() + "\n" + c.ProcessedText
	default:
		s = c.Name + "\n" + c.ProcessedText
	}
	if s == "" || s == "\n" {
		if c.RawText != "" {
			return c.RawText
		}
	}
	return s
}

// Build computes each new Chunk's embedding input, embeds in batches,
// appends rows to `all`, and routes each row also into `code` or `doc` by
// ContentType.
func (idx *Index) Build(ctx context.Context, provider embed.Provider, chunks []*chunk.Chunk, batchSize int) error {
	if len(chunks) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 32
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = EmbeddingInputFor(c)
	}

	embeddings, err := embed.Batched(ctx, provider, texts, embed.EmbedModePassage, batchSize, nil)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}

	for i, c := range chunks {
		vec := normalizeL2(embeddings[i])
		idx.All.Add(vec, c)

		switch c.ContentType {
		case chunk.ContentCode:
			idx.Code.Add(vec, c)
		case chunk.ContentDocumentation:
			idx.Doc.Add(vec, c)
		}
	}

	return nil
}
