package rst

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivav/code-cognitio/internal/chunk"
)

func sectionByTitle(t *testing.T, chunks []*chunk.Chunk, title string) *chunk.Chunk {
	t.Helper()
	for _, c := range chunks {
		if c.Kind == chunk.KindSection && c.Title() == title {
			return c
		}
	}
	t.Fatalf("no section titled %q among %d chunks", title, len(chunks))
	return nil
}

func TestExtractUnderlinedSections(t *testing.T) {
	source := []byte(`My Library
##########

Intro text.

Installation
============

Use pip.

Usage
-----

Call it.
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "docs/index.rst", source)
	require.NoError(t, err)

	// Whole-document fallback chunk is always first, at level 0.
	require.NotEmpty(t, chunks)
	assert.Equal(t, chunk.KindSection, chunks[0].Kind)
	assert.Equal(t, 0, chunks[0].Level())
	assert.Equal(t, "My Library", chunks[0].DocumentTitle())

	title := sectionByTitle(t, chunks, "My Library")
	assert.Equal(t, 1, title.Level(), "# marker is level 1")

	install := sectionByTitle(t, chunks, "Installation")
	assert.Equal(t, 3, install.Level(), "= marker is level 3")
	assert.Contains(t, install.RawText, "Use pip.")

	usage := sectionByTitle(t, chunks, "Usage")
	assert.Equal(t, 4, usage.Level(), "- marker is level 4")
}

func TestUnknownMarkerDefaultsToLevelSix(t *testing.T) {
	source := []byte("Notes\n~~~~~\n\nBody.\n")
	e := New()
	chunks, err := e.Extract(context.Background(), "notes.rst", source)
	require.NoError(t, err)

	notes := sectionByTitle(t, chunks, "Notes")
	assert.Equal(t, 6, notes.Level())
}

func TestExtractCodeBlockDirective(t *testing.T) {
	source := []byte(`Examples
========

.. code-block:: python

    import os
    print(os.getcwd())

Trailing text.
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "examples.rst", source)
	require.NoError(t, err)

	var block *chunk.Chunk
	for _, c := range chunks {
		if c.Kind == chunk.KindCodeBlock {
			block = c
		}
	}
	require.NotNil(t, block, "expected a code_block chunk from the directive")
	assert.Equal(t, "python", block.Language)
	assert.Contains(t, block.RawText, "import os")
	assert.NotContains(t, block.RawText, "    import os", "common indent is stripped")
}
