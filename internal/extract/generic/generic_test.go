package generic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivav/code-cognitio/internal/chunk"
)

func TestExtractEmitsSingleGenericFileChunk(t *testing.T) {
	e := New()
	chunks, err := e.Extract(context.Background(), "data/config.toml", []byte("key = \"value\"\n"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Equal(t, chunk.KindGenericFile, c.Kind)
	assert.Equal(t, "config.toml", c.Name)
	assert.Equal(t, "key = \"value\"\n", c.RawText)
	assert.Equal(t, chunk.ContentCode, c.ContentType)
}
