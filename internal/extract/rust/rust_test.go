package rust

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivav/code-cognitio/internal/chunk"
)

func findChunk(t *testing.T, chunks []*chunk.Chunk, kind chunk.Kind, name string) *chunk.Chunk {
	t.Helper()
	for _, c := range chunks {
		if c.Kind == kind && c.Name == name {
			return c
		}
	}
	t.Fatalf("no %s chunk named %q among %d chunks", kind, name, len(chunks))
	return nil
}

func TestExtractFunctionWithRustdoc(t *testing.T) {
	source := []byte(`/// Adds two numbers.
/// Wrapping is the caller's problem.
fn add(a: i32, b: i32) -> i32 {
    a + b
}
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "math.rs", source)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "add")
	assert.Equal(t, "Adds two numbers. Wrapping is the caller's problem.", fn.Docstring())
	assert.Equal(t, "add(a: i32, b: i32) -> i32", fn.Signature())
}

func TestExtractStructAndImplMethods(t *testing.T) {
	source := []byte(`/// A point in the plane.
struct Point {
    x: i32,
    y: i32,
}

impl Point {
    /// Returns the x coordinate.
    fn x(&self) -> i32 {
        self.x
    }
}
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "geom.rs", source)
	require.NoError(t, err)

	st := findChunk(t, chunks, chunk.KindClass, "Point")
	assert.Equal(t, "A point in the plane.", st.Docstring())

	method := findChunk(t, chunks, chunk.KindMethod, "x")
	assert.Equal(t, "Point", method.ClassName())
	assert.Equal(t, "Point::x", method.FullName())
	assert.Equal(t, "Returns the x coordinate.", method.Docstring())
	assert.Equal(t, "Point::x(&self) -> i32", method.Signature())
}
