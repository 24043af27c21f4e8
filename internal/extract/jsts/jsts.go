// Package jsts implements the JavaScript/TypeScript/JSX/TSX extractor, a
// regex-based extractor with no AST library:
// function/arrow-function/class/method/import/JSDoc patterns, a
// nearest-preceding-JSDoc-within-10-characters attachment rule,
// destructuring kept as a single opaque parameter, 200-character body
// truncation, and React component detection for .jsx/.tsx files.
package jsts

import (
	"context"
	"regexp"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
)

var (
	functionPattern = regexp.MustCompile(`(?s)(?:export\s+)?(?:async\s+)?function\s+(?P<name>[a-zA-Z_$][a-zA-Z0-9_$]*)\s*(?P<params>\([^)]*\))\s*(?P<body>\{.*?\})`)
	classPattern    = regexp.MustCompile(`(?s)(?:export\s+)?class\s+(?P<name>[a-zA-Z_$][a-zA-Z0-9_$]*)(?:\s+extends\s+(?P<extends>[a-zA-Z_$][a-zA-Z0-9_$.]*))?\s*(?P<body>\{.*?\})`)
	methodPattern   = regexp.MustCompile(`(?s)(?:async\s+)?(?P<name>[a-zA-Z_$][a-zA-Z0-9_$]*)\s*(?P<params>\([^)]*\))\s*(?P<body>\{.*?\})`)
	arrowPattern    = regexp.MustCompile(`(?s)(?:export\s+)?(?:const|let|var)\s+(?P<name>[a-zA-Z_$][a-zA-Z0-9_$]*)\s*=\s*(?:async\s+)?(?P<params>\([^)]*\)|[a-zA-Z_$][a-zA-Z0-9_$]*)\s*=>\s*(?P<body>\{.*?\})`)
	importPattern   = regexp.MustCompile(`import\s+(?:[a-zA-Z_$][a-zA-Z0-9_$]*\s*,?\s*)?(?:\{\s*[^}]*\s*\})?\s*from\s*['"](?P<source>[^'"]*)['"]`)
	jsxComponentRe  = regexp.MustCompile(`(?s)(?:export\s+)?(?:function|const)\s+(?P<name>[A-Z][a-zA-Z0-9_$]*)\s*(?:=\s*)?(?P<params>\([^)]*\))\s*(?:=>\s*)?(?P<body>\{.*?\})`)
	jsxElementRe    = regexp.MustCompile(`<([A-Z][a-zA-Z0-9_$]*)(?:\s|/|>)`)
	jsdocPattern    = regexp.MustCompile(`(?s)/\*\*(?P<content>.*?)\*/`)
	paramSplitRe    = regexp.MustCompile(`(?:\{[^}]*\}|\[[^\]]*\]|[^,]+)(?:,|$)`)
	camelBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Extractor implements extract.Extractor for JavaScript/TypeScript sources.
type Extractor struct{}

// New returns a JavaScript/TypeScript extractor.
func New() *Extractor { return &Extractor{} }

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	content := string(source)
	isJSX := strings.HasSuffix(path, ".jsx") || strings.HasSuffix(path, ".tsx")

	imports := extractImports(content)
	jsdocs := extractJSDocs(content)

	var chunks []*chunk.Chunk
	chunks = append(chunks, extractFunctions(content, path, jsdocs, imports)...)
	chunks = append(chunks, extractClasses(content, path, jsdocs, imports)...)
	if isJSX {
		chunks = append(chunks, extractComponents(content, path, jsdocs, imports)...)
	}

	return chunks, nil
}

type jsdoc struct {
	description string
	params      []chunk.Param
}

// extractJSDocs maps each `/** ... */` comment's end offset to its parsed
// contents, for the nearest-preceding-comment lookup below.
func extractJSDocs(content string) map[int]jsdoc {
	docs := make(map[int]jsdoc)
	for _, m := range jsdocPattern.FindAllStringSubmatchIndex(content, -1) {
		body := content[m[2]:m[3]]
		end := m[1]
		docs[end] = parseJSDoc(body)
	}
	return docs
}

func parseJSDoc(body string) jsdoc {
	var desc []string
	var params []chunk.Param
	inDescription := true

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "* "))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "@") {
			inDescription = false
		}
		if inDescription {
			desc = append(desc, line)
			continue
		}
		if strings.HasPrefix(line, "@param") {
			params = append(params, parseParamTag(line))
		}
	}

	return jsdoc{description: strings.Join(desc, " "), params: params}
}

var paramTagRe = regexp.MustCompile(`@param\s+(?:\{(?P<type>[^}]*)\})?\s*(?P<name>\S+)?`)

func parseParamTag(line string) chunk.Param {
	m := paramTagRe.FindStringSubmatch(line)
	if m == nil {
		return chunk.Param{}
	}
	names := paramTagRe.SubexpNames()
	p := chunk.Param{}
	for i, name := range names {
		switch name {
		case "type":
			p.Type = m[i]
		case "name":
			p.Name = m[i]
		}
	}
	return p
}

// nearestJSDoc implements the "nearest JSDoc within 10 characters before the
// definition" rule.
func nearestJSDoc(docs map[int]jsdoc, start int) (jsdoc, bool) {
	for end, doc := range docs {
		if end < start && start-end < 10 {
			return doc, true
		}
	}
	return jsdoc{}, false
}

func extractImports(content string) []chunk.Import {
	var imports []chunk.Import
	for _, m := range importPattern.FindAllStringSubmatch(content, -1) {
		source := m[importPattern.SubexpIndex("source")]
		if source != "" {
			imports = append(imports, chunk.Import{Kind: "import", Module: source, Name: source})
		}
	}
	return imports
}

func extractFunctions(content, path string, jsdocs map[int]jsdoc, imports []chunk.Import) []*chunk.Chunk {
	var chunks []*chunk.Chunk

	for _, m := range functionPattern.FindAllStringSubmatchIndex(content, -1) {
		name := submatch(content, m, functionPattern, "name")
		paramsStr := submatch(content, m, functionPattern, "params")
		body := submatch(content, m, functionPattern, "body")
		start := m[0]

		chunks = append(chunks, buildFunctionChunk(content, path, name, paramsStr, body, start, jsdocs, imports, false))
	}

	for _, m := range arrowPattern.FindAllStringSubmatchIndex(content, -1) {
		name := submatch(content, m, arrowPattern, "name")
		paramsStr := submatch(content, m, arrowPattern, "params")
		body := submatch(content, m, arrowPattern, "body")
		start := m[0]

		chunks = append(chunks, buildFunctionChunk(content, path, name, paramsStr, body, start, jsdocs, imports, true))
	}

	return chunks
}

func buildFunctionChunk(content, path, name, paramsStr, body string, start int, jsdocs map[int]jsdoc, imports []chunk.Import, isArrow bool) *chunk.Chunk {
	c := chunk.New(chunk.KindFunction, name, path, lineAt(content, start), languageFor(path))
	c.SetFullName(name)
	c.RawText = truncateBody(body)
	c.SetParams(parseParameters(paramsStr))
	c.SetReadableName(readableName(name))
	c.SetImports(imports)
	if doc, ok := nearestJSDoc(jsdocs, start); ok {
		c.SetDocstring(doc.description)
	}
	if isArrow {
		c.SetPatterns([]string{"arrow_function"})
	}
	return c
}

func extractClasses(content, path string, jsdocs map[int]jsdoc, imports []chunk.Import) []*chunk.Chunk {
	var chunks []*chunk.Chunk

	for _, m := range classPattern.FindAllStringSubmatchIndex(content, -1) {
		name := submatch(content, m, classPattern, "name")
		extends := submatch(content, m, classPattern, "extends")
		body := submatch(content, m, classPattern, "body")
		start := m[0]

		cc := chunk.New(chunk.KindClass, name, path, lineAt(content, start), languageFor(path))
		cc.RawText = truncateBody(body)
		cc.SetReadableName(name)
		cc.SetImports(imports)
		if extends != "" {
			cc.SetBases([]string{extends})
		}
		if doc, ok := nearestJSDoc(jsdocs, start); ok {
			cc.SetDocstring(doc.description)
		}

		var methodNames []string
		var methodChunks []*chunk.Chunk
		for _, mm := range methodPattern.FindAllStringSubmatchIndex(body, -1) {
			methodName := submatch(body, mm, methodPattern, "name")
			methodParams := submatch(body, mm, methodPattern, "params")
			methodBody := submatch(body, mm, methodPattern, "body")
			methodNames = append(methodNames, methodName)

			mc := chunk.New(chunk.KindMethod, methodName, path, lineAt(content, start)+lineAt(body, mm[0])-1, languageFor(path))
			mc.SetClassName(name)
			mc.SetFullName(name + "." + methodName)
			mc.RawText = truncateBody(methodBody)
			mc.SetParams(parseParameters(methodParams))
			mc.SetReadableName(name + "." + methodName)
			methodChunks = append(methodChunks, mc)
		}
		cc.SetMethods(methodNames)

		chunks = append(chunks, cc)
		chunks = append(chunks, methodChunks...)
	}

	return chunks
}

func extractComponents(content, path string, jsdocs map[int]jsdoc, imports []chunk.Import) []*chunk.Chunk {
	var chunks []*chunk.Chunk

	for _, m := range jsxComponentRe.FindAllStringSubmatchIndex(content, -1) {
		name := submatch(content, m, jsxComponentRe, "name")
		paramsStr := submatch(content, m, jsxComponentRe, "params")
		body := submatch(content, m, jsxComponentRe, "body")
		start := m[0]

		c := chunk.New(chunk.KindComponent, name, path, lineAt(content, start), languageFor(path))
		c.SetFullName(name)
		c.RawText = truncateBody(body)
		c.SetProps(paramNames(parseParameters(paramsStr)))
		c.SetReadableName(name)
		c.SetImports(imports)
		if doc, ok := nearestJSDoc(jsdocs, start); ok {
			c.SetDocstring(doc.description)
		}
		if elements := jsxElements(body); len(elements) > 0 {
			c.SetJSXElements(elements)
		}
		chunks = append(chunks, c)
	}

	return chunks
}

func jsxElements(body string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range jsxElementRe.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

func paramNames(params []chunk.Param) []string {
	var names []string
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}

// parseParameters implements the destructuring-as-opaque-parameter rule:
// `{a, b}` and `[a, b]` patterns are kept whole rather than split on their
// internal commas.
func parseParameters(paramsStr string) []chunk.Param {
	paramsStr = strings.Trim(paramsStr, "()")
	paramsStr = strings.TrimSpace(paramsStr)
	if paramsStr == "" {
		return nil
	}

	var params []chunk.Param
	for _, raw := range paramSplitRe.FindAllString(paramsStr, -1) {
		text := strings.TrimRight(strings.TrimSpace(raw), ",")
		if text == "" {
			continue
		}

		var defaultValue string
		name := text
		if idx := strings.Index(text, "="); idx >= 0 {
			name = strings.TrimSpace(text[:idx])
			defaultValue = strings.TrimSpace(text[idx+1:])
		}

		var paramType string
		if strings.Contains(name, ":") && !strings.HasPrefix(name, "{") && !strings.HasPrefix(name, "[") {
			parts := strings.SplitN(name, ":", 2)
			name = strings.TrimSpace(parts[0])
			paramType = strings.TrimSpace(parts[1])
		}

		name = strings.TrimPrefix(name, "...")

		params = append(params, chunk.Param{Name: name, Type: paramType, Default: defaultValue})
	}
	return params
}

func truncateBody(body string) string {
	const max = 200
	if len(body) > max {
		return body[:max] + "..."
	}
	return body
}

func readableName(name string) string {
	name = camelBoundaryRe.ReplaceAllString(name, "$1 $2")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToLower(name)
}

func lineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

func languageFor(path string) string {
	if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") {
		return "typescript"
	}
	return "javascript"
}

func submatch(content string, indices []int, re *regexp.Regexp, name string) string {
	idx := re.SubexpIndex(name)
	if idx < 0 || 2*idx+1 >= len(indices) {
		return ""
	}
	start, end := indices[2*idx], indices[2*idx+1]
	if start < 0 || end < 0 {
		return ""
	}
	return content[start:end]
}
