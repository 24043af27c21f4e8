package vectorindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/embed"
	"github.com/bivav/code-cognitio/internal/logging"
)

func newTestChunk(kind chunk.Kind, name, docstring string) *chunk.Chunk {
	c := chunk.New(kind, name, "pkg/file.py", 1, "python")
	c.ContentType = chunk.ContentTypeFor(kind)
	if kind == chunk.KindFunction || kind == chunk.KindMethod {
		c.SetFullName(name)
		c.SetDocstring(docstring)
	} else if kind == chunk.KindClass {
		c.SetDocstring(docstring)
	} else {
		c.ProcessedText = docstring
	}
	return c
}

func TestEmbeddingInputForFunction(t *testing.T) {
	c := newTestChunk(chunk.KindFunction, "add", "adds two numbers")
	input := EmbeddingInputFor(c)
	assert.Contains(t, input, "add")
	assert.Contains(t, input, "adds two numbers")
}

func TestEmbeddingInputForFallsBackToRawText(t *testing.T) {
	c := chunk.New(chunk.KindGenericFile, "", "f.bin", 1, "binary")
	c.RawText = "raw fallback text"
	assert.Equal(t, "raw fallback text", EmbeddingInputFor(c))
}

func TestBuildRoutesToCodeAndDocCollections(t *testing.T) {
	fn := newTestChunk(chunk.KindFunction, "add", "adds two numbers")
	section := newTestChunk(chunk.KindSection, "Usage", "how to use this thing")

	idx := New("mock-embedder", 384)
	provider := embed.NewMockProvider()

	err := idx.Build(context.Background(), provider, []*chunk.Chunk{fn, section}, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.TotalChunks())
	assert.Equal(t, 1, idx.CodeChunks())
	assert.Equal(t, 1, idx.DocChunks())
}

func TestSearchReturnsResultsSortedByScore(t *testing.T) {
	fn1 := newTestChunk(chunk.KindFunction, "add", "adds two numbers together")
	fn2 := newTestChunk(chunk.KindFunction, "subtract", "subtracts one number from another")

	idx := New("mock-embedder", 384)
	provider := embed.NewMockProvider()
	require.NoError(t, idx.Build(context.Background(), provider, []*chunk.Chunk{fn1, fn2}, 10))

	results, err := idx.Search(context.Background(), provider, Query{Text: "adds two numbers together", TopK: 2})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearchAppliesTypeFilter(t *testing.T) {
	fn := newTestChunk(chunk.KindFunction, "add", "adds two numbers")
	cls := newTestChunk(chunk.KindClass, "Adder", "adds two numbers via a class")

	idx := New("mock-embedder", 384)
	provider := embed.NewMockProvider()
	require.NoError(t, idx.Build(context.Background(), provider, []*chunk.Chunk{fn, cls}, 10))

	results, err := idx.Search(context.Background(), provider, Query{
		Text:       "adds two numbers",
		TopK:       5,
		TypeFilter: string(chunk.KindClass),
	})
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, chunk.KindClass, r.Chunk.Kind)
	}
}

func TestSearchAppliesParamFilter(t *testing.T) {
	fn := newTestChunk(chunk.KindFunction, "add", "adds two numbers")
	fn.SetParams([]chunk.Param{{Name: "amount", Type: "int"}})
	other := newTestChunk(chunk.KindFunction, "noop", "does nothing")

	idx := New("mock-embedder", 384)
	provider := embed.NewMockProvider()
	require.NoError(t, idx.Build(context.Background(), provider, []*chunk.Chunk{fn, other}, 10))

	results, err := idx.Search(context.Background(), provider, Query{
		Text:      "adds two numbers",
		TopK:      5,
		ParamName: "amount",
	})
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, "add", r.Chunk.Name)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	fn := newTestChunk(chunk.KindFunction, "add", "adds two numbers")
	section := newTestChunk(chunk.KindSection, "Usage", "how to use this thing")

	idx := New("mock-embedder", 384)
	provider := embed.NewMockProvider()
	require.NoError(t, idx.Build(context.Background(), provider, []*chunk.Chunk{fn, section}, 10))

	dir := t.TempDir()
	require.NoError(t, idx.Save(dir))

	for _, f := range []string{metadataFile, allChunksFile, codeChunksFile, docChunksFile, allBinFile, codeBinFile, docBinFile} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	loaded, err := Load(dir, "mock-embedder", 384, logging.Default())
	require.NoError(t, err)
	assert.Equal(t, idx.TotalChunks(), loaded.TotalChunks())
	assert.Equal(t, idx.CodeChunks(), loaded.CodeChunks())
	assert.Equal(t, idx.DocChunks(), loaded.DocChunks())
}

func TestLoadReturnsErrIndexMissingWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, "mock-embedder", 384, logging.Default())
	assert.ErrorIs(t, err, ErrIndexMissing)
}
