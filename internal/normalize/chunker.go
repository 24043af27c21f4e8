package normalize

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/bivav/code-cognitio/internal/chunk"
)

// SectionChunker splits oversize `section` Chunks along paragraph/sentence
// boundaries. Functions, methods, classes, and modules are never chunked.
type SectionChunker struct {
	MaxChars int
}

// NewSectionChunker returns a chunker with the given max-chars threshold; 0
// selects the default of 500.
func NewSectionChunker(maxChars int) *SectionChunker {
	if maxChars <= 0 {
		maxChars = 500
	}
	return &SectionChunker{MaxChars: maxChars}
}

// Chunk splits c if it is a section Chunk whose RawText exceeds MaxChars,
// returning the original slice of one unchanged otherwise.
func (sc *SectionChunker) Chunk(c *chunk.Chunk) []*chunk.Chunk {
	if c.Kind != chunk.KindSection || len(c.RawText) <= sc.MaxChars {
		return []*chunk.Chunk{c}
	}

	paragraphs := sc.splitParagraphs(c.RawText)

	var out []*chunk.Chunk
	var current strings.Builder
	idx := 0

	flush := func() {
		if current.Len() == 0 {
			return
		}
		sub := cloneChunk(c)
		sub.RawText = current.String()
		sub.ChunkIndex = idx
		out = append(out, sub)
		idx++
		current.Reset()
	}

	for _, para := range paragraphs {
		if current.Len() > 0 && current.Len()+len("\n\n")+len(para) > sc.MaxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return out
}

// splitParagraphs splits on blank lines, then further splits any
// over-threshold paragraph into sentences.
func (sc *SectionChunker) splitParagraphs(text string) []string {
	rawParas := strings.Split(text, "\n\n")
	var paras []string
	for _, p := range rawParas {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}

	var result []string
	for _, para := range paras {
		if len(para) <= sc.MaxChars {
			result = append(result, para)
			continue
		}

		sentences := splitSentences(para)
		var current strings.Builder
		for _, sentence := range sentences {
			if current.Len() > 0 && current.Len()+1+len(sentence) > sc.MaxChars {
				result = append(result, current.String())
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)
		}
		if current.Len() > 0 {
			result = append(result, current.String())
		}
	}
	return result
}

// splitSentences implements the `(?<=[.!?])\s+(?=[A-Z])` split manually,
// since Go's regexp package has no lookbehind support — a scan for a
// sentence-ending punctuation mark followed by whitespace followed by an
// uppercase letter, preserving the punctuation in the preceding sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	i := 0
	for i < len(runes) {
		r := runes[i]
		if r == '.' || r == '!' || r == '?' {
			j := i + 1
			sawSpace := false
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				sawSpace = true
				j++
			}
			if sawSpace && j < len(runes) && unicode.IsUpper(runes[j]) {
				sentences = append(sentences, strings.TrimSpace(string(runes[start:i+1])))
				start = j
				i = j
				continue
			}
		}
		i++
	}
	if start < len(runes) {
		rest := strings.TrimSpace(string(runes[start:]))
		if rest != "" {
			sentences = append(sentences, rest)
		}
	}
	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

// cloneChunk copies a section Chunk's metadata for a sub-chunk; only the ID,
// text, and chunk index differ between siblings.
func cloneChunk(c *chunk.Chunk) *chunk.Chunk {
	clone := *c
	clone.ID = uuid.NewString()
	clone.Attributes = make(chunk.Attributes, len(c.Attributes))
	for k, v := range c.Attributes {
		clone.Attributes[k] = v
	}
	return &clone
}
