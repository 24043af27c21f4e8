// Package rst implements the reStructuredText extractor: title detection via
// the underline/overline convention, header level from the fixed marker
// order `# * = - ^ "` (unknown markers default to level 6), and
// `.. code-block:: lang` / literal-block (`::` + indented block) extraction
// with common indentation stripped.
package rst

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
)

var headerMarkers = []byte("#*=-^\"")

var (
	codeBlockRe = regexp.MustCompile(`(?s)\.\. code-block:: (\w+)\s*\n\s*\n(.*?)(?:\n\s*\n|$)`)
	literalRe   = regexp.MustCompile(`(?m)::\s*\n\s*\n((?:\s+.*\n)+)`)
)

// Extractor implements extract.Extractor for reStructuredText documents.
type Extractor struct{}

// New returns a reStructuredText extractor.
func New() *Extractor { return &Extractor{} }

type headerMark struct {
	line  int // index into lines, the title line (not the marker line)
	level int
	title string
}

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	content := string(source)
	lines := strings.Split(content, "\n")

	documentTitle := findTitle(lines)
	if documentTitle == "" {
		documentTitle = filepath.Base(path)
	}

	var chunks []*chunk.Chunk

	whole := chunk.New(chunk.KindSection, filepath.Base(path), path, 1, "rst")
	whole.SetTitle(filepath.Base(path))
	whole.SetLevel(0)
	whole.SetPosition(0)
	whole.SetDocumentTitle(documentTitle)
	whole.RawText = content
	chunks = append(chunks, whole)

	headers := findHeaders(lines)
	for i, h := range headers {
		end := len(lines)
		if i+1 < len(headers) {
			end = headers[i+1].line
		}

		bodyStart := h.line + 1
		if bodyStart < len(lines) && isHeaderMarker(lines[bodyStart]) {
			bodyStart++
		}
		if bodyStart > end {
			bodyStart = end
		}
		body := strings.Join(lines[bodyStart:end], "\n")

		c := chunk.New(chunk.KindSection, h.title, path, h.line+1, "rst")
		c.SetTitle(h.title)
		c.SetLevel(h.level)
		c.SetPosition(charOffset(lines, h.line))
		c.SetDocumentTitle(documentTitle)
		c.RawText = strings.TrimSpace(body)
		chunks = append(chunks, c)

		chunks = append(chunks, codeBlocksIn(body, path, h.line+1)...)
	}

	return chunks, nil
}

// findTitle implements _find_title: the first underline-style or
// overline+underline-style heading found in the document.
func findTitle(lines []string) string {
	for i := 0; i < len(lines)-1; i++ {
		if strings.TrimSpace(lines[i]) != "" && isHeaderMarker(lines[i+1]) {
			return strings.TrimSpace(lines[i])
		}
		if i+2 < len(lines) && isHeaderMarker(lines[i]) && strings.TrimSpace(lines[i+1]) != "" && isHeaderMarker(lines[i+2]) {
			return strings.TrimSpace(lines[i+1])
		}
	}
	return ""
}

func isHeaderMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	first := trimmed[0]
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != first {
			return false
		}
	}
	return true
}

func headerLevel(marker byte) int {
	for i, m := range headerMarkers {
		if m == marker {
			return i + 1
		}
	}
	return 6
}

// findHeaders implements _extract_sections's header-scanning loop:
// underline-style (title line followed by a marker line) and
// overline+underline-style (marker, title, marker) headings.
func findHeaders(lines []string) []headerMark {
	var headers []headerMark
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i-1]) != "" && isHeaderMarker(lines[i]) {
			headers = append(headers, headerMark{line: i - 1, level: headerLevel(lines[i][0]), title: strings.TrimSpace(lines[i-1])})
			continue
		}
		if i+1 < len(lines) && isHeaderMarker(lines[i-1]) && strings.TrimSpace(lines[i]) != "" && isHeaderMarker(lines[i+1]) {
			headers = append(headers, headerMark{line: i, level: headerLevel(lines[i-1][0]), title: strings.TrimSpace(lines[i])})
		}
	}
	return headers
}

func charOffset(lines []string, upTo int) int {
	n := 0
	for i := 0; i < upTo && i < len(lines); i++ {
		n += len(lines[i]) + 1
	}
	return n
}

// codeBlocksIn extracts `.. code-block:: lang` directives and `::`
// literal blocks from a section's body, with common indentation stripped.
func codeBlocksIn(body, path string, lineOffset int) []*chunk.Chunk {
	var chunks []*chunk.Chunk

	for _, m := range codeBlockRe.FindAllStringSubmatch(body, -1) {
		lang := m[1]
		if lang == "" {
			lang = "text"
		}
		code := stripCommonIndent(m[2])
		c := chunk.New(chunk.KindCodeBlock, "Code block ("+lang+")", path, lineOffset, "rst")
		c.SetTitle("Code block (" + lang + ")")
		c.Language = lang
		c.RawText = code
		chunks = append(chunks, c)
	}

	for _, m := range literalRe.FindAllStringSubmatch(body, -1) {
		code := stripCommonIndent(m[1])
		c := chunk.New(chunk.KindCodeBlock, "Code block (text)", path, lineOffset, "rst")
		c.SetTitle("Code block (text)")
		c.Language = "text"
		c.RawText = code
		chunks = append(chunks, c)
	}

	return chunks
}

func stripCommonIndent(code string) string {
	lines := strings.Split(code, "\n")
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return code
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}
		if len(line) >= minIndent {
			out[i] = line[minIndent:]
		} else {
			out[i] = line
		}
	}
	return strings.Join(out, "\n")
}
