// Package c implements the C/C++ extractor: function signatures, struct and
// class declarations, the leading `/** */` doc comment, and a body digest.
package c

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	clang "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// Extractor implements extract.Extractor for C and C++ source files.
type Extractor struct {
	lang *sitter.Language
}

// New returns a C/C++ extractor.
func New() *Extractor {
	return &Extractor{lang: sitter.NewLanguage(clang.Language())}
}

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	tree := tsutil.Default.Parse("c", e.lang, source)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	language := "c"
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".cpp" || ext == ".cc" || ext == ".hpp" || ext == ".hh" || ext == ".cxx" {
		language = "cpp"
	}

	var chunks []*chunk.Chunk
	root := tree.RootNode()
	tsutil.Walk(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			if fc := emitFunction(n, source, path, language); fc != nil {
				chunks = append(chunks, fc)
			}
			return false
		case "struct_specifier", "class_specifier":
			if sc := emitStructOrClass(n, source, path, language); sc != nil {
				chunks = append(chunks, sc)
			}
		}
		return true
	})

	return chunks, nil
}

func emitFunction(node *sitter.Node, source []byte, path, language string) *chunk.Chunk {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return nil
	}
	name := functionName(declarator, source)
	if name == "" {
		return nil
	}

	c := chunk.New(chunk.KindFunction, name, path, tsutil.Line(node), language)
	c.SetFullName(name)
	c.RawText = tsutil.NodeText(node, source)
	c.SetSignature(functionSignature(node, source))
	c.SetDocstring(leadingDocComment(node, source))
	c.SetBodyDigest(bodyDigest(node, source))
	return c
}

func functionName(declarator *sitter.Node, source []byte) string {
	switch declarator.Kind() {
	case "identifier":
		return tsutil.NodeText(declarator, source)
	case "function_declarator", "pointer_declarator":
		return functionName(declarator.ChildByFieldName("declarator"), source)
	default:
		for i := 0; i < int(declarator.ChildCount()); i++ {
			child := declarator.Child(uint(i))
			if child.Kind() == "identifier" {
				return tsutil.NodeText(child, source)
			}
		}
	}
	return ""
}

func functionSignature(node *sitter.Node, source []byte) string {
	typeNode := node.ChildByFieldName("type")
	declarator := node.ChildByFieldName("declarator")
	var sig string
	if typeNode != nil {
		sig = tsutil.NodeText(typeNode, source) + " "
	}
	if declarator != nil {
		sig += tsutil.NodeText(declarator, source)
	}
	return sig
}

func emitStructOrClass(node *sitter.Node, source []byte, path, language string) *chunk.Chunk {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := tsutil.NodeText(nameNode, source)

	c := chunk.New(chunk.KindClass, name, path, tsutil.Line(node), language)
	c.RawText = tsutil.NodeText(node, source)
	c.SetDocstring(leadingDocComment(node, source))
	return c
}

// leadingDocComment returns the text of a single `/** ... */` block comment
// immediately preceding node, or "" if absent or not a doc comment.
func leadingDocComment(node *sitter.Node, source []byte) string {
	comments := tsutil.PrecedingComments(node, "comment")
	if len(comments) == 0 {
		return ""
	}
	last := comments[len(comments)-1]
	text := tsutil.NodeText(last, source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/"))
}

// bodyDigest renders a short, stable summary of a function's body for
// search, capped to keep embeddable text small.
func bodyDigest(node *sitter.Node, source []byte) string {
	text := tsutil.NodeText(node, source)
	const max = 400
	if len(text) > max {
		return text[:max]
	}
	return text
}
