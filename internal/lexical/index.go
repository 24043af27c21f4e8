// Package lexical implements the optional bleve-backed keyword index: a
// complement to the vector collections that `search --hybrid` and the MCP
// tool's `hybrid` option blend with vector scores.
package lexical

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/bivav/code-cognitio/internal/chunk"
)

// FileName is the adjunct file's name within the data directory. The leading
// underscore marks it as an adjunct the core persisted layout doesn't
// require.
const FileName = "_lexical.bleve"

// Index wraps a bleve index over every Chunk's searchable fields.
type Index struct {
	bleve bleve.Index
}

// buildMapping uses a keyword analyzer for exact-match fields (kind,
// language, file_path) and a standard analyzer for the free-text field, with
// term vectors enabled for phrase search and highlighting.
func buildMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = "standard"
	text.Store = true
	text.Index = true
	text.IncludeTermVectors = true

	keyword := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = "keyword"
		f.Store = true
		f.Index = true
		return f
	}

	stored := bleve.NewTextFieldMapping()
	stored.Analyzer = "keyword"
	stored.Store = true
	stored.Index = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("id", stored)
	doc.AddFieldMappingsAt("text", text)
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("kind", keyword())
	doc.AddFieldMappingsAt("language", keyword())
	doc.AddFieldMappingsAt("file_path", keyword())

	im.DefaultMapping = doc
	return im
}

// document is the shape indexed for every Chunk.
type document struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Language string `json:"language"`
	FilePath string `json:"file_path"`
}

func toDocument(c *chunk.Chunk) document {
	text := c.ProcessedText
	if text == "" {
		text = c.RawText
	}
	return document{
		ID:       c.ID,
		Text:     text,
		Name:     c.Name,
		Kind:     string(c.Kind),
		Language: c.Language,
		FilePath: c.FilePath,
	}
}

// Build creates a disk-backed index at dir/FileName and batch-indexes every
// chunk, 1000 docs per batch, so large repositories don't hold one giant
// bleve.Batch in memory.
func Build(ctx context.Context, dir string, chunks []*chunk.Chunk) (*Index, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	_ = os.RemoveAll(path)

	idx, err := bleve.New(path, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating lexical index: %w", err)
	}

	const batchSize = 1000
	batch := idx.NewBatch()
	for i, c := range chunks {
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				idx.Close()
				return nil, ctx.Err()
			default:
			}
		}
		if err := batch.Index(c.ID, toDocument(c)); err != nil {
			idx.Close()
			return nil, fmt.Errorf("indexing chunk %s: %w", c.ID, err)
		}
		if batch.Size() >= batchSize {
			if err := idx.Batch(batch); err != nil {
				idx.Close()
				return nil, fmt.Errorf("executing lexical batch: %w", err)
			}
			batch = idx.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := idx.Batch(batch); err != nil {
			idx.Close()
			return nil, fmt.Errorf("executing final lexical batch: %w", err)
		}
	}

	return &Index{bleve: idx}, nil
}

// Load opens a previously built lexical index. The adjunct file is never
// required for plain `search`; when it is absent Load returns the os.Stat
// error, and callers fall back to vector-only results without rebuilding it.
func Load(dir string) (*Index, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	idx, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexical index: %w", err)
	}
	return &Index{bleve: idx}, nil
}

// Close releases the underlying bleve index's file handles.
func (i *Index) Close() error {
	if i == nil || i.bleve == nil {
		return nil
	}
	return i.bleve.Close()
}
