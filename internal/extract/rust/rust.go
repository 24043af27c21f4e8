// Package rust implements the Rust extractor: function signatures, structs,
// impl-block methods attributed to their type, the leading Rustdoc `///`
// run, and a body digest.
package rust

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rustlang "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// Extractor implements extract.Extractor for Rust source files.
type Extractor struct {
	lang *sitter.Language
}

// New returns a Rust extractor.
func New() *Extractor {
	return &Extractor{lang: sitter.NewLanguage(rustlang.Language())}
}

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	tree := tsutil.Default.Parse("rust", e.lang, source)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	var chunks []*chunk.Chunk
	tsutil.Walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "struct_item":
			chunks = append(chunks, emitStruct(n, source, path))
			return false
		case "impl_item":
			typeName := tsutil.NodeText(n.ChildByFieldName("type"), source)
			if body := n.ChildByFieldName("body"); body != nil {
				for i := 0; i < int(body.ChildCount()); i++ {
					member := body.Child(uint(i))
					if member.Kind() == "function_item" {
						chunks = append(chunks, emitFunction(member, source, path, typeName))
					}
				}
			}
			return false
		case "function_item":
			chunks = append(chunks, emitFunction(n, source, path, ""))
			return false
		}
		return true
	})

	return chunks, nil
}

func emitStruct(node *sitter.Node, source []byte, path string) *chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)
	c := chunk.New(chunk.KindClass, name, path, tsutil.Line(node), "rust")
	c.RawText = tsutil.NodeText(node, source)
	c.SetDocstring(leadingRustdoc(node, source))
	return c
}

func emitFunction(node *sitter.Node, source []byte, path, typeName string) *chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)

	kind := chunk.KindFunction
	if typeName != "" {
		kind = chunk.KindMethod
	}

	c := chunk.New(kind, name, path, tsutil.Line(node), "rust")
	if typeName != "" {
		c.SetClassName(typeName)
		c.SetFullName(typeName + "::" + name)
	} else {
		c.SetFullName(name)
	}
	c.RawText = tsutil.NodeText(node, source)
	c.SetSignature(functionSignature(node, source, typeName, name))
	c.SetDocstring(leadingRustdoc(node, source))
	c.SetBodyDigest(bodyDigest(node, source))
	return c
}

func functionSignature(node *sitter.Node, source []byte, typeName, name string) string {
	paramsNode := node.ChildByFieldName("parameters")
	returnNode := node.ChildByFieldName("return_type")

	prefix := name
	if typeName != "" {
		prefix = typeName + "::" + name
	}

	sig := prefix
	if paramsNode != nil {
		sig += tsutil.NodeText(paramsNode, source)
	} else {
		sig += "()"
	}
	if returnNode != nil {
		sig += " -> " + tsutil.NodeText(returnNode, source)
	}
	return sig
}

// leadingRustdoc returns the text of the contiguous run of `///` comments
// immediately above node, joined with spaces, or "" if there is none.
func leadingRustdoc(node *sitter.Node, source []byte) string {
	comments := tsutil.PrecedingComments(node, "line_comment")
	if len(comments) == 0 {
		return ""
	}
	var lines []string
	for _, comment := range comments {
		text := strings.TrimSpace(tsutil.NodeText(comment, source))
		if !strings.HasPrefix(text, "///") {
			continue
		}
		text = strings.TrimSpace(strings.TrimPrefix(text, "///"))
		if text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, " ")
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
