// Package python implements the Python extractor, the richest extractor in
// the pipeline: full AST parsing via tree-sitter, a chunked fallback for
// large files, regex salvage on syntax error, call/inheritance
// relationships, surrounding-code context, design-pattern tagging, and
// call-site usage analysis.
package python

import (
	"context"
	"strings"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Extractor implements extract.Extractor for Python source files.
type Extractor struct {
	lang                    *sitter.Language
	largeFileThresholdBytes int64
}

// New returns a Python extractor. largeFileThresholdBytes is the size above
// which files use the chunked large-file fallback; 0 selects the default of
// 1 MiB.
func New(largeFileThresholdBytes int64) *Extractor {
	if largeFileThresholdBytes <= 0 {
		largeFileThresholdBytes = 1 << 20
	}
	return &Extractor{
		lang:                    sitter.NewLanguage(python.Language()),
		largeFileThresholdBytes: largeFileThresholdBytes,
	}
}

// Extract parses path's Python source into an optional module Chunk,
// followed by top-level functions and classes (with methods) in source
// order.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	if int64(len(source)) > e.largeFileThresholdBytes {
		return e.extractLargeFile(path, source)
	}

	tree := tsutil.Default.Parse("python", e.lang, source)
	if tree == nil {
		return e.regexSalvage(path, source)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		chunks, err := e.regexSalvage(path, source)
		if err == nil {
			return chunks, nil
		}
	}

	return e.extractFullTree(path, source, root)
}

// extractFullTree walks the parsed tree top-down: module docstring and
// imports first, then each top-level definition in source order.
func (e *Extractor) extractFullTree(path string, source []byte, root *sitter.Node) ([]*chunk.Chunk, error) {
	lines := strings.Split(string(source), "\n")

	cm := buildCodeMap(root, source)
	rels := buildRelationships(root, source, cm)

	var chunks []*chunk.Chunk

	if modDoc, ok := moduleDocstring(root, source); ok {
		mc := chunk.New(chunk.KindModule, moduleName(path), path, 1, "python")
		mc.SetDocstring(modDoc)
		mc.SetImports(moduleImports(root, source))
		mc.RawText = modDoc
		chunks = append(chunks, mc)
	}

	body := root
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		switch child.Kind() {
		case "function_definition":
			fc := e.emitFunction(child, source, lines, path, "", cm, rels)
			chunks = append(chunks, fc)
		case "class_definition":
			classChunks := e.emitClass(child, source, lines, path, cm, rels)
			chunks = append(chunks, classChunks...)
		case "decorated_definition":
			inner := innerDefinition(child)
			if inner == nil {
				continue
			}
			switch inner.Kind() {
			case "function_definition":
				fc := e.emitFunction(inner, source, lines, path, "", cm, rels)
				applyDecoratorPatterns(fc, child, source)
				chunks = append(chunks, fc)
			case "class_definition":
				classChunks := e.emitClass(inner, source, lines, path, cm, rels)
				chunks = append(chunks, classChunks...)
			}
		}
	}

	attachUsage(root, source, chunks)

	return chunks, nil
}

func innerDefinition(decorated *sitter.Node) *sitter.Node {
	for i := 0; i < int(decorated.ChildCount()); i++ {
		child := decorated.Child(uint(i))
		if child.Kind() == "function_definition" || child.Kind() == "class_definition" {
			return child
		}
	}
	return nil
}

func moduleName(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".py")
}

// moduleDocstring returns the first statement's string literal, if any.
func moduleDocstring(root *sitter.Node, source []byte) (string, bool) {
	if root.ChildCount() == 0 {
		return "", false
	}
	first := root.Child(0)
	if first.Kind() != "expression_statement" {
		return "", false
	}
	if first.ChildCount() == 0 {
		return "", false
	}
	str := first.Child(0)
	if str.Kind() != "string" {
		return "", false
	}
	return unquoteDocstring(tsutil.NodeText(str, source)), true
}

func moduleImports(root *sitter.Node, source []byte) []chunk.Import {
	var imports []chunk.Import
	tsutil.Walk(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			for _, name := range tsutil.Children(n, "dotted_name") {
				imports = append(imports, chunk.Import{Kind: "import", Name: tsutil.NodeText(name, source)})
			}
			for _, alias := range tsutil.Children(n, "aliased_import") {
				nameNode := alias.ChildByFieldName("name")
				aliasNode := alias.ChildByFieldName("alias")
				imports = append(imports, chunk.Import{
					Kind:  "import",
					Name:  tsutil.NodeText(nameNode, source),
					Alias: tsutil.NodeText(aliasNode, source),
				})
			}
		case "import_from_statement":
			moduleNode := n.ChildByFieldName("module_name")
			mod := tsutil.NodeText(moduleNode, source)
			for _, name := range tsutil.Children(n, "dotted_name") {
				if moduleNode != nil && name.StartByte() == moduleNode.StartByte() {
					continue
				}
				imports = append(imports, chunk.Import{Kind: "import_from", Module: mod, Name: tsutil.NodeText(name, source)})
			}
		}
		return true
	})
	return imports
}

func unquoteDocstring(s string) string {
	s = strings.TrimSpace(s)
	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) && len(s) >= 2*len(quote) {
			return strings.TrimSpace(s[len(quote) : len(s)-len(quote)])
		}
	}
	return s
}
