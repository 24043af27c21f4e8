package python

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

func TestRelationshipsCallsAndInheritance(t *testing.T) {
	source := []byte(`
def helper():
    pass

def caller():
    helper()

class Base:
    pass

class Derived(Base):
    def method(self):
        helper()
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "mod.py", source)
	require.NoError(t, err)

	caller := findChunk(t, chunks, chunk.KindFunction, "caller")
	var callsHelper bool
	for _, rel := range caller.Relationships() {
		if rel.Type == "calls" && rel.DisplayName == "helper" {
			callsHelper = true
		}
	}
	assert.True(t, callsHelper, "expected caller() to record a calls edge to helper()")

	derived := findChunk(t, chunks, chunk.KindClass, "Derived")
	var inherits bool
	for _, rel := range derived.Relationships() {
		if rel.Type == "inherits_from" && rel.DisplayName == "Base" {
			inherits = true
		}
	}
	assert.True(t, inherits, "expected Derived to record an inherits_from edge to Base")

	method := findChunk(t, chunks, chunk.KindMethod, "method")
	var methodCallsHelper bool
	for _, rel := range method.Relationships() {
		if rel.Type == "calls" && rel.DisplayName == "helper" {
			methodCallsHelper = true
		}
	}
	assert.True(t, methodCallsHelper, "expected Derived.method() to record a calls edge to helper()")
}

func TestRelationshipsIgnoreExternalCalls(t *testing.T) {
	source := []byte(`
def caller():
    print("not file-local")
    os.path.join("a", "b")
`)
	e := New(0)
	chunks, err := e.Extract(context.Background(), "mod.py", source)
	require.NoError(t, err)

	caller := findChunk(t, chunks, chunk.KindFunction, "caller")
	assert.Empty(t, caller.Relationships(), "calls to print/os.path.join aren't file-local symbols")
}
