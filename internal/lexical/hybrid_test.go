package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/vectorindex"
)

func TestMergeBlendsAndDedupesOverlap(t *testing.T) {
	shared := chunk.New(chunk.KindFunction, "shared", "a.py", 1, "python")
	shared.ID = "shared"
	lexOnly := chunk.New(chunk.KindFunction, "lex_only", "b.py", 1, "python")
	lexOnly.ID = "lex-only"

	vecResults := []vectorindex.Result{
		{Chunk: shared, Score: 0.9},
	}
	hits := []Hit{
		{ChunkID: "shared", Score: 10},
		{ChunkID: "lex-only", Score: 5},
	}
	lookup := func(id string) (*chunk.Chunk, bool) {
		if id == "lex-only" {
			return lexOnly, true
		}
		return nil, false
	}

	merged := Merge(vecResults, hits, lookup, vectorindex.Query{}, 5)

	require.Len(t, merged, 2)
	assert.Equal(t, "shared", merged[0].Chunk.ID)
	assert.InDelta(t, 0.6*0.9+0.4*1.0, merged[0].Score, 1e-6)
	assert.Equal(t, "lex-only", merged[1].Chunk.ID)
}

func TestMergeDropsLexicalHitsLookupCannotResolve(t *testing.T) {
	lookup := func(id string) (*chunk.Chunk, bool) { return nil, false }
	merged := Merge(nil, []Hit{{ChunkID: "ghost", Score: 1}}, lookup, vectorindex.Query{}, 5)
	assert.Empty(t, merged)
}

func TestMergeTruncatesToTopK(t *testing.T) {
	var vecResults []vectorindex.Result
	for i := 0; i < 10; i++ {
		c := chunk.New(chunk.KindFunction, "fn", "a.py", 1, "python")
		c.ID = string(rune('a' + i))
		vecResults = append(vecResults, vectorindex.Result{Chunk: c, Score: float32(i)})
	}
	lookup := func(id string) (*chunk.Chunk, bool) { return nil, false }

	merged := Merge(vecResults, nil, lookup, vectorindex.Query{}, 3)
	require.Len(t, merged, 3)
}
