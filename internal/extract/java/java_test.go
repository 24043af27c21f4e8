package java

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

func TestExtractClassAndMethods(t *testing.T) {
	source := []byte(`/** Greets people by name. */
public class Greeter {
    /**
     * Builds the greeting string.
     * @param name who to greet
     */
    public String greet(String name) {
        return "hello " + name;
    }
}
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "Greeter.java", source)
	require.NoError(t, err)

	cls := findChunk(t, chunks, chunk.KindClass, "Greeter")
	assert.Equal(t, "Greets people by name.", cls.Docstring())

	method := findChunk(t, chunks, chunk.KindMethod, "greet")
	assert.Equal(t, "Greeter", method.ClassName())
	assert.Equal(t, "Greeter.greet", method.FullName())
	assert.Equal(t, "Greeter.greet(String name): String", method.Signature())
	assert.Contains(t, method.Docstring(), "Builds the greeting string.")
}

func TestExtractInterface(t *testing.T) {
	source := []byte(`public interface Store {
    void save(String key);
}
`)
	e := New()
	chunks, err := e.Extract(context.Background(), "Store.java", source)
	require.NoError(t, err)

	findChunk(t, chunks, chunk.KindClass, "Store")
}
