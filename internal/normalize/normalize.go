// Package normalize implements the text normalizer: it derives
// processed_text, signature, and section_type on a Chunk from its
// kind-specific source text via lowercase, punctuation strip, whitespace
// collapse, stop-word removal, and lemmatization.
package normalize

import (
	"regexp"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
)

var (
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	fencedBlockRe = regexp.MustCompile("(?s)```.*?```")
)

// Normalizer rewrites a Chunk in place with its embedding-ready text.
type Normalizer struct {
	// UseRich toggles lemmatization/stop-word removal beyond the baseline
	// lowercase+punctuation-strip pass (config's use_rich_normalization).
	UseRich bool
}

// New returns a Normalizer. rich selects the full
// lowercase/strip/tokenize/stopword/lemmatize pipeline; false applies only
// steps 1-3 (useful for corpora where lemmatization would be too lossy).
func New(rich bool) *Normalizer {
	return &Normalizer{UseRich: rich}
}

// Normalize populates c.ProcessedText (and, for functions/methods/sections,
// c.Signature/SectionType) from the kind-specific source text.
func (n *Normalizer) Normalize(c *chunk.Chunk) {
	c.ContentType = chunk.ContentTypeFor(c.Kind)

	source := n.sourceTextFor(c)
	c.ProcessedText = n.clean(source)

	switch c.Kind {
	case chunk.KindFunction, chunk.KindMethod:
		c.SetSignature(RenderSignature(c))
	case chunk.KindSection:
		c.SetSectionType(ClassifySectionType(c.Title()))
	}
}

// sourceTextFor selects the kind-specific text the normalizer operates on:
// the docstring for code Chunks, content-minus-code-blocks for
// documentation Chunks.
func (n *Normalizer) sourceTextFor(c *chunk.Chunk) string {
	switch c.Kind {
	case chunk.KindFunction, chunk.KindMethod, chunk.KindClass:
		return c.Docstring()
	case chunk.KindSection, chunk.KindCodeBlock:
		return StripCodeBlocks(c.RawText)
	default:
		if c.RawText != "" {
			return c.RawText
		}
		return c.Name
	}
}

// clean implements steps 1-6: lowercase, strip non-alphanumeric, collapse
// whitespace, tokenize, drop stop-words, lemmatize, rejoin.
func (n *Normalizer) clean(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	stripped := nonAlnumRe.ReplaceAllString(lower, " ")
	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(stripped, " "))
	if collapsed == "" {
		return ""
	}

	tokens := strings.Split(collapsed, " ")
	if !n.UseRich {
		return strings.Join(tokens, " ")
	}

	var out []string
	for _, tok := range tokens {
		if isStopWord(tok) {
			continue
		}
		out = append(out, lemmatize(tok))
	}
	return strings.Join(out, " ")
}

// StripCodeBlocks removes fenced (triple-backtick) and indented (4-space or
// tab prefixed) code blocks from documentation text before normalization,
// while leaving RawText untouched for display.
func StripCodeBlocks(text string) string {
	withoutFenced := fencedBlockRe.ReplaceAllString(text, "")

	lines := strings.Split(withoutFenced, "\n")
	var out []string
	for _, line := range lines {
		if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// ClassifySectionType classifies a section by title substring, first rule
// wins.
func ClassifySectionType(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "install"), strings.Contains(lower, "setup"):
		return "installation"
	case strings.Contains(lower, "usage"), strings.Contains(lower, "example"):
		return "usage"
	case strings.Contains(lower, "api"), strings.Contains(lower, "reference"):
		return "reference"
	case strings.Contains(lower, "config"):
		return "configuration"
	default:
		return "general"
	}
}

// RenderSignature renders a function/method Chunk's canonical signature
// string: `full_name(p1: T1, p2, ...) -> R` with missing types/return
// omitted.
func RenderSignature(c *chunk.Chunk) string {
	name := c.FullName()
	if name == "" {
		name = c.Name
	}

	params := c.Params()
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Type != "" {
			parts = append(parts, p.Name+": "+p.Type)
		} else {
			parts = append(parts, p.Name)
		}
	}

	sig := name + "(" + strings.Join(parts, ", ") + ")"
	if ret := c.ReturnType(); ret != "" {
		sig += " -> " + ret
	}
	return sig
}
