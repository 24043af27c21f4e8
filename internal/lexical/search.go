package lexical

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

// Hit is one keyword match: the chunk ID, bleve's relevance score, and any
// highlighted fragments of the text field.
type Hit struct {
	ChunkID    string
	Score      float64
	Highlights []string
}

// Search runs a bleve QueryStringQuery (field scoping, boolean operators,
// phrase/wildcard/fuzzy syntax all come for free from bleve's query string
// parser) and returns up to limit hits ordered by descending score.
func (i *Index) Search(queryStr string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 15
	}

	q := bleve.NewQueryStringQuery(queryStr)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"id"}

	highlightStyle := "html"
	req.Highlight = bleve.NewHighlight()
	req.Highlight.Style = &highlightStyle
	req.Highlight.Fields = []string{"text"}

	result, err := i.bleve.Search(req)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, Hit{
			ChunkID:    h.ID,
			Score:      h.Score,
			Highlights: extractHighlights(h.Fragments),
		})
	}
	return hits, nil
}

// extractHighlights flattens bleve's per-field fragment map into a flat list
// of the "text" field's highlighted snippets.
func extractHighlights(fragments map[string][]string) []string {
	if fragments == nil {
		return nil
	}
	return fragments["text"]
}
