package lexical

import (
	"sort"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/vectorindex"
)

// vectorWeight and lexicalWeight are the fixed blend weights for hybrid
// re-ranking. Vector scores are already cosine similarities in [-1, 1];
// bleve scores are unbounded TF-IDF-ish values, so lexical scores are
// divided by the highest lexical score in this result set before blending.
const (
	vectorWeight  = 0.6
	lexicalWeight = 0.4
)

// Merge unions vector results with lexical hits, re-ranks by the weighted
// blend, applies the same post-filter chain the vector-only path used, and
// truncates to topK. lookup resolves a lexical-only chunk ID (one bleve
// found but the vector search didn't surface) back to its Chunk; chunks
// absent from lookup are dropped since there is nothing left to display or
// filter on.
func Merge(vecResults []vectorindex.Result, hits []Hit, lookup func(id string) (*chunk.Chunk, bool), q vectorindex.Query, topK int) []vectorindex.Result {
	if topK <= 0 {
		topK = 5
	}

	maxLexical := 0.0
	for _, h := range hits {
		if h.Score > maxLexical {
			maxLexical = h.Score
		}
	}
	normalize := func(s float64) float32 {
		if maxLexical <= 0 {
			return 0
		}
		return float32(s / maxLexical)
	}

	lexicalScore := make(map[string]float32, len(hits))
	for _, h := range hits {
		lexicalScore[h.ChunkID] = normalize(h.Score)
	}

	combined := make(map[string]*vectorindex.Result, len(vecResults)+len(hits))
	order := make([]string, 0, len(vecResults)+len(hits))

	for _, r := range vecResults {
		r := r
		combined[r.Chunk.ID] = &r
		order = append(order, r.Chunk.ID)
	}
	for _, h := range hits {
		if _, ok := combined[h.ChunkID]; ok {
			continue
		}
		c, ok := lookup(h.ChunkID)
		if !ok {
			continue
		}
		if !vectorindex.PassesPostFilter(c, q) {
			continue
		}
		combined[h.ChunkID] = &vectorindex.Result{
			Chunk:          c,
			Score:          0,
			DisplayContent: vectorindex.DisplayContentFor(c),
		}
		order = append(order, h.ChunkID)
	}

	blended := make([]vectorindex.Result, 0, len(order))
	for _, id := range order {
		r := *combined[id]
		r.Score = vectorWeight*r.Score + lexicalWeight*lexicalScore[id]
		blended = append(blended, r)
	}

	sort.SliceStable(blended, func(i, j int) bool { return blended[i].Score > blended[j].Score })
	if len(blended) > topK {
		blended = blended[:topK]
	}
	return blended
}
