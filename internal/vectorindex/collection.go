// Package vectorindex implements the three-collection flat inner-product
// vector index: a dense row-major float32 matrix of L2-normalized embeddings
// per collection (all/code/doc), parallel Chunk lists, batched build,
// filtered k-NN search, and the seven-file persisted layout.
package vectorindex

import (
	"math"

	"github.com/bivav/code-cognitio/internal/chunk"
)

// Collection is one flat inner-product index: a row-major embedding matrix
// and the parallel Chunk list whose i-th entry corresponds to row i.
// Position is insertion order; deletion is unsupported.
type Collection struct {
	Dimension  int
	Embeddings [][]float32
	Chunks     []*chunk.Chunk
}

// NewCollection returns an empty collection for the given embedding
// dimension.
func NewCollection(dimension int) *Collection {
	return &Collection{Dimension: dimension}
}

// Add appends one (embedding, chunk) pair. embedding is L2-normalized by the
// caller (Index.Build) before this is called.
func (c *Collection) Add(embedding []float32, ch *chunk.Chunk) {
	c.Embeddings = append(c.Embeddings, embedding)
	c.Chunks = append(c.Chunks, ch)
}

// Len returns the number of rows in the collection.
func (c *Collection) Len() int { return len(c.Chunks) }

// normalizeL2 returns a unit-norm copy of v (no-op if already ~unit-norm or
// the zero vector).
func normalizeL2(v []float32) []float32 {
	var sumSq float64
	for _, f := range v {
		sumSq += float64(f) * float64(f)
	}
	norm := math.Sqrt(sumSq)
	out := make([]float32, len(v))
	if norm == 0 {
		copy(out, v)
		return out
	}
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

// innerProduct computes the dot product of two equal-length vectors, which
// is cosine similarity when both are unit-norm.
func innerProduct(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
