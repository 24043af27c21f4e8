package ruby

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

func TestExtractTopLevelMethod(t *testing.T) {
	source := []byte(`# Greets the user by name.
# Returns a string.
def greet(name)
  "hello #{name}"
end
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "greet.rb", source)
	require.NoError(t, err)

	fn := findChunk(t, chunks, chunk.KindFunction, "greet")
	assert.Equal(t, "Greets the user by name. Returns a string.", fn.Docstring())
	assert.Equal(t, "greet(name)", fn.Signature())
}

func TestExtractClassWithMethods(t *testing.T) {
	source := []byte(`class UserStore
  # Finds a user record.
  def find(id)
    nil
  end
end
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "store.rb", source)
	require.NoError(t, err)

	findChunk(t, chunks, chunk.KindClass, "UserStore")

	method := findChunk(t, chunks, chunk.KindMethod, "find")
	assert.Equal(t, "UserStore", method.ClassName())
	assert.Equal(t, "UserStore#find", method.FullName())
	assert.Equal(t, "Finds a user record.", method.Docstring())
}
