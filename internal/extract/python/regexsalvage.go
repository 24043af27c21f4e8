package python

import (
	"regexp"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
)

// regexFuncRe and regexClassRe locate def/class headers with an optional
// immediately-following triple-quoted docstring for the syntax-error salvage
// path.
var (
	regexFuncRe  = regexp.MustCompile(`(?m)^([ \t]*)def\s+(\w+)\s*\(([^)]*)\)\s*(?:->\s*([^\s:]+))?\s*:`)
	regexClassRe = regexp.MustCompile(`(?m)^([ \t]*)class\s+(\w+)\s*(?:\(([^)]*)\))?\s*:`)
	docstringRe  = regexp.MustCompile(`(?s)^\s*("""(.*?)"""|'''(.*?)''')`)
)

// regexSalvage finds function and class definitions by regex when AST
// parsing fails. params, return_type (for classes: bases) are left empty
// except where trivially recoverable from the header; lineno is computed
// from newline count to the match start. Every emitted Chunk is tagged
// Partial.
func (e *Extractor) regexSalvage(path string, source []byte) ([]*chunk.Chunk, error) {
	text := string(source)
	var chunks []*chunk.Chunk

	classMatches := regexClassRe.FindAllStringSubmatchIndex(text, -1)
	classSpans := make([]struct{ start, end int }, 0, len(classMatches))
	for _, m := range classMatches {
		indent := text[m[2]:m[3]]
		blockEnd := findBlockEnd(text, m[1], indent)
		classSpans = append(classSpans, struct{ start, end int }{m[0], blockEnd})

		name := text[m[4]:m[5]]
		c := chunk.New(chunk.KindClass, name, path, lineAt(text, m[0]), "python")
		c.Partial = true
		if m[6] >= 0 {
			c.SetBases(splitParams(text[m[6]:m[7]]))
		}
		c.SetDocstring(matchDocstring(text[m[1]:blockEnd]))
		c.RawText = text[m[0]:blockEnd]
		chunks = append(chunks, c)

		for _, fm := range regexFuncRe.FindAllStringSubmatchIndex(text[m[1]:blockEnd], -1) {
			offset := m[1]
			mname := text[offset+fm[4] : offset+fm[5]]
			mc := chunk.New(chunk.KindMethod, mname, path, lineAt(text, offset+fm[0]), "python")
			mc.Partial = true
			mc.SetClassName(name)
			mc.SetFullName(name + "." + mname)
			mend := offset + fm[1]
			mc.SetDocstring(matchDocstring(text[mend:min(len(text), mend+400)]))
			chunks = append(chunks, mc)
		}
	}

	for _, fm := range regexFuncRe.FindAllStringSubmatchIndex(text, -1) {
		if withinAny(fm[0], classSpans) {
			continue
		}
		name := text[fm[4]:fm[5]]
		c := chunk.New(chunk.KindFunction, name, path, lineAt(text, fm[0]), "python")
		c.Partial = true
		c.SetFullName(name)
		if fm[8] >= 0 {
			c.SetReturnType(text[fm[8]:fm[9]])
		}
		end := fm[1]
		c.SetDocstring(matchDocstring(text[end:min(len(text), end+400)]))
		c.RawText = text[fm[0]:min(len(text), end+400)]
		chunks = append(chunks, c)
	}

	return chunks, nil
}

func findBlockEnd(text string, from int, indent string) int {
	lines := strings.Split(text[from:], "\n")
	var out int
	seenBody := false
	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		curIndent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if seenBody && len(curIndent) <= len(indent) {
			out = idx
			break
		}
		seenBody = true
		out = idx + 1
	}
	offset := from
	for i := 0; i < out; i++ {
		offset += len(lines[i]) + 1
	}
	if offset > len(text) {
		offset = len(text)
	}
	return offset
}

func matchDocstring(s string) string {
	m := docstringRe.FindStringSubmatch(strings.TrimLeft(s, " \t\n"))
	if m == nil {
		return ""
	}
	if m[2] != "" {
		return strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(m[3])
}

func splitParams(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lineAt(text string, pos int) int {
	return strings.Count(text[:pos], "\n") + 1
}

func withinAny(pos int, spans []struct{ start, end int }) bool {
	for _, s := range spans {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}
