package vectorindex

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/embed"
)

// Result is one search hit: the matching Chunk, its similarity score, and
// the rendered display content.
type Result struct {
	Chunk          *chunk.Chunk `json:"chunk"`
	Score          float32      `json:"score"`
	DisplayContent string       `json:"display_content"`
}

// Query bundles a search request's parameters.
type Query struct {
	Text          string
	TopK          int
	ContentFilter chunk.ContentType // "" selects the `all` collection
	MinScore      float32
	TypeFilter    string // exact chunk.Kind match, "" disables
	ParamName     string
	ParamType     string
	ReturnType    string

	// OverFetchMultiplier sets k' = OverFetchMultiplier*k (default 2).
	OverFetchMultiplier int
}

// Search selects the collection matching content_filter (defaulting to
// `all`), embeds the query, runs k'-NN with over-fetch, filters by
// min_score, applies the structural post-filters, truncates to k, and
// returns results sorted by descending score.
func (idx *Index) Search(ctx context.Context, provider embed.Provider, q Query) ([]Result, error) {
	if q.TopK <= 0 {
		q.TopK = 5
	}
	overFetch := q.OverFetchMultiplier
	if overFetch <= 0 {
		overFetch = 2
	}

	coll := idx.All
	switch q.ContentFilter {
	case chunk.ContentCode:
		coll = idx.Code
	case chunk.ContentDocumentation:
		coll = idx.Doc
	}

	if coll.Len() == 0 {
		return []Result{}, nil
	}

	embeddings, err := provider.Embed(ctx, []string{q.Text}, embed.EmbedModeQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(embeddings) == 0 {
		return []Result{}, nil
	}
	queryVec := normalizeL2(embeddings[0])

	kPrime := q.TopK * overFetch

	type scored struct {
		idx   int
		score float32
	}
	candidates := make([]scored, coll.Len())
	for i, vec := range coll.Embeddings {
		candidates[i] = scored{idx: i, score: innerProduct(queryVec, vec)}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > kPrime {
		candidates = candidates[:kPrime]
	}

	var results []Result
	for _, cand := range candidates {
		if len(results) >= q.TopK {
			break
		}
		if cand.score < q.MinScore {
			continue
		}
		c := coll.Chunks[cand.idx]
		if !passesPostFilter(c, q) {
			continue
		}
		results = append(results, Result{
			Chunk:          c,
			Score:          cand.score,
			DisplayContent: DisplayContentFor(c),
		})
	}

	return results, nil
}

// PassesPostFilter exports passesPostFilter for callers outside this package
// that need to apply the same chain to chunks gathered from elsewhere (the
// lexical index's hybrid merge, which may surface chunks the vector search
// itself didn't candidate).
func PassesPostFilter(c *chunk.Chunk, q Query) bool {
	return passesPostFilter(c, q)
}

// passesPostFilter applies the structural predicates in order; the first
// failed predicate rejects.
func passesPostFilter(c *chunk.Chunk, q Query) bool {
	if q.TypeFilter != "" && string(c.Kind) != q.TypeFilter {
		return false
	}
	if q.ParamName != "" && !paramFieldContains(c, q.ParamName, func(p chunk.Param) string { return p.Name }) {
		return false
	}
	if q.ParamType != "" && !paramFieldContains(c, q.ParamType, func(p chunk.Param) string { return p.Type }) {
		return false
	}
	if q.ReturnType != "" {
		if c.Kind != chunk.KindFunction && c.Kind != chunk.KindMethod {
			return false
		}
		if !strings.Contains(strings.ToLower(c.ReturnType()), strings.ToLower(q.ReturnType)) {
			return false
		}
	}
	return true
}

// paramFieldContains reports whether c is a function/method with some
// parameter whose selected field contains needle, case-insensitively.
func paramFieldContains(c *chunk.Chunk, needle string, field func(chunk.Param) string) bool {
	if c.Kind != chunk.KindFunction && c.Kind != chunk.KindMethod {
		return false
	}
	needle = strings.ToLower(needle)
	for _, p := range c.Params() {
		if strings.Contains(strings.ToLower(field(p)), needle) {
			return true
		}
	}
	return false
}

// DisplayContentFor renders the body shown alongside a search result:
// RawText when present, falling back to ProcessedText.
func DisplayContentFor(c *chunk.Chunk) string {
	if c.RawText != "" {
		return c.RawText
	}
	return c.ProcessedText
}
