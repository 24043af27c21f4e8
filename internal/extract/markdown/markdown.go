// Package markdown implements the Markdown extractor: split by ATX headers
// into section Chunks, a whole-document fallback when no headers exist,
// document_title from the first H1 or file basename, and fenced code blocks
// over two lines extracted as separate code_block Chunks.
package markdown

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/normalize"
)

var (
	atxHeaderRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+?)\s*$`)
	fenceRe     = regexp.MustCompile("(?ms)^```([a-zA-Z0-9_+-]*)[ \t]*$\\n(.*?)\\n```[ \t]*$")
)

// Extractor implements extract.Extractor for Markdown documents.
type Extractor struct{}

// New returns a Markdown extractor.
func New() *Extractor { return &Extractor{} }

type heading struct {
	level int
	title string
	start int // byte offset of the heading line
	body  int // byte offset where the section's body begins
}

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	content := string(source)
	headings := findHeadings(content)
	documentTitle := documentTitleFor(headings, path)

	var chunks []*chunk.Chunk
	if len(headings) == 0 {
		c := chunk.New(chunk.KindSection, documentTitle, path, 1, "markdown")
		c.SetTitle(documentTitle)
		c.SetLevel(0)
		c.SetPosition(0)
		c.SetDocumentTitle(documentTitle)
		c.RawText = content
		c.SetSectionType(normalize.ClassifySectionType(documentTitle))
		chunks = append(chunks, c)
	} else {
		for i, h := range headings {
			end := len(content)
			if i+1 < len(headings) {
				end = headings[i+1].start
			}
			body := content[h.body:end]

			c := chunk.New(chunk.KindSection, h.title, path, lineAt(content, h.start), "markdown")
			c.SetTitle(h.title)
			c.SetLevel(h.level)
			c.SetPosition(i)
			c.SetDocumentTitle(documentTitle)
			c.RawText = strings.TrimSpace(body)
			c.SetSectionType(normalize.ClassifySectionType(h.title))
			chunks = append(chunks, c)
		}
	}

	chunks = append(chunks, extractCodeBlocks(content, path, headings)...)

	return chunks, nil
}

func findHeadings(content string) []heading {
	var headings []heading
	matches := atxHeaderRe.FindAllStringSubmatchIndex(content, -1)
	for _, m := range matches {
		level := len(content[m[2]:m[3]])
		title := strings.TrimSpace(content[m[4]:m[5]])
		body := m[1]
		if body < len(content) && content[body] == '\n' {
			body++
		}
		headings = append(headings, heading{level: level, title: title, start: m[0], body: body})
	}
	return headings
}

func documentTitleFor(headings []heading, path string) string {
	for _, h := range headings {
		if h.level == 1 {
			return h.title
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// extractCodeBlocks pulls out fenced code blocks of more than two lines as
// separate code_block Chunks, titled after the nearest preceding header or
// "Code block (<lang>)".
func extractCodeBlocks(content, path string, headings []heading) []*chunk.Chunk {
	var chunks []*chunk.Chunk
	for _, m := range fenceRe.FindAllStringSubmatchIndex(content, -1) {
		lang := content[m[2]:m[3]]
		body := content[m[4]:m[5]]
		if strings.Count(body, "\n")+1 <= 2 {
			continue
		}

		start := m[0]
		title := nearestHeaderTitle(headings, start)
		if title == "" {
			if lang != "" {
				title = "Code block (" + lang + ")"
			} else {
				title = "Code block"
			}
		}

		c := chunk.New(chunk.KindCodeBlock, title, path, lineAt(content, start), "markdown")
		c.SetTitle(title)
		c.SetPosition(start)
		c.Language = lang
		c.RawText = body
		chunks = append(chunks, c)
	}
	return chunks
}

func nearestHeaderTitle(headings []heading, offset int) string {
	var best *heading
	for i := range headings {
		if headings[i].start < offset {
			best = &headings[i]
		}
	}
	if best == nil {
		return ""
	}
	return best.title
}

func lineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}
