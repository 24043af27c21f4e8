package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract"
)

// named returns an extractor whose identity a test can recover through the
// chunks it emits.
func named(tag string) extract.Extractor {
	return extract.ExtractorFunc(func(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
		return []*chunk.Chunk{chunk.New(chunk.KindGenericFile, tag, path, 1, "")}, nil
	})
}

func tagOf(t *testing.T, e extract.Extractor) string {
	t.Helper()
	if e == nil {
		return ""
	}
	chunks, err := e.Extract(context.Background(), "probe", nil)
	assert.NoError(t, err)
	if len(chunks) == 0 {
		return ""
	}
	return chunks[0].Name
}

func TestResolveBasenameWinsOverExtension(t *testing.T) {
	tbl := New()
	tbl.RegisterBasename("Dockerfile", named("docker"))
	tbl.RegisterExtension(".py", named("python"))

	assert.Equal(t, "docker", tagOf(t, tbl.Resolve("ops/Dockerfile")))
	assert.Equal(t, "python", tagOf(t, tbl.Resolve("src/app.py")))
}

func TestResolveExtensionAlias(t *testing.T) {
	tbl := New()
	tbl.RegisterExtension(".py", named("python"))
	tbl.RegisterExtensionAlias(".pyw", ".py")
	tbl.RegisterExtensionAlias(".pyi", ".py")

	assert.Equal(t, "python", tagOf(t, tbl.Resolve("gui/main.pyw")))
	assert.Equal(t, "python", tagOf(t, tbl.Resolve("stubs/types.pyi")))
}

func TestResolveExtensionCaseInsensitive(t *testing.T) {
	tbl := New()
	tbl.RegisterExtension(".md", named("markdown"))

	assert.Equal(t, "markdown", tagOf(t, tbl.Resolve("README.MD")))
}

func TestResolveGenericFallback(t *testing.T) {
	tbl := New()
	tbl.RegisterExtension(".py", named("python"))
	tbl.SetGenericExtractor(named("generic"))

	assert.Equal(t, "generic", tagOf(t, tbl.Resolve("data/records.csv")))
}

func TestResolveNilWithoutFallback(t *testing.T) {
	tbl := New()
	assert.Nil(t, tbl.Resolve("anything.xyz"))
}
