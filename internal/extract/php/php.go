// Package php implements the PHP extractor: function/method signatures, the
// enclosing class name, the leading PHPDoc comment with tag lines dropped,
// and a body digest.
package php

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	phplang "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// Extractor implements extract.Extractor for PHP source files.
type Extractor struct {
	lang *sitter.Language
}

// New returns a PHP extractor.
func New() *Extractor {
	return &Extractor{lang: sitter.NewLanguage(phplang.LanguagePHP())}
}

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	tree := tsutil.Default.Parse("php", e.lang, source)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	var chunks []*chunk.Chunk
	tsutil.Walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class_declaration":
			chunks = append(chunks, emitClass(n, source, path))
			if body := n.ChildByFieldName("body"); body != nil {
				className := tsutil.NodeText(n.ChildByFieldName("name"), source)
				for i := 0; i < int(body.ChildCount()); i++ {
					member := body.Child(uint(i))
					if member.Kind() == "method_declaration" {
						chunks = append(chunks, emitFunctionLike(member, source, path, chunk.KindMethod, className))
					}
				}
			}
			return false
		case "function_definition":
			chunks = append(chunks, emitFunctionLike(n, source, path, chunk.KindFunction, ""))
			return false
		}
		return true
	})

	return chunks, nil
}

func emitClass(node *sitter.Node, source []byte, path string) *chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)
	c := chunk.New(chunk.KindClass, name, path, tsutil.Line(node), "php")
	c.RawText = tsutil.NodeText(node, source)
	c.SetDocstring(leadingPHPDoc(node, source))
	return c
}

func emitFunctionLike(node *sitter.Node, source []byte, path string, kind chunk.Kind, className string) *chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)

	c := chunk.New(kind, name, path, tsutil.Line(node), "php")
	if className != "" {
		c.SetClassName(className)
		c.SetFullName(className + "::" + name)
	} else {
		c.SetFullName(name)
	}
	c.RawText = tsutil.NodeText(node, source)
	c.SetSignature(functionSignature(node, source, className, name))
	c.SetDocstring(leadingPHPDoc(node, source))
	c.SetBodyDigest(bodyDigest(node, source))
	return c
}

func functionSignature(node *sitter.Node, source []byte, className, name string) string {
	paramsNode := node.ChildByFieldName("parameters")
	returnType := node.ChildByFieldName("return_type")

	prefix := name
	if className != "" {
		prefix = className + "::" + name
	}

	sig := prefix
	if paramsNode != nil {
		sig += tsutil.NodeText(paramsNode, source)
	} else {
		sig += "()"
	}
	if returnType != nil {
		sig += ": " + tsutil.NodeText(returnType, source)
	}
	return sig
}

// leadingPHPDoc returns the text of a single `/** ... */` comment
// immediately preceding node, or "" if absent or not a PHPDoc comment.
func leadingPHPDoc(node *sitter.Node, source []byte) string {
	comments := tsutil.PrecedingComments(node, "comment")
	if len(comments) == 0 {
		return ""
	}
	last := comments[len(comments)-1]
	text := tsutil.NodeText(last, source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return cleanPHPDoc(text)
}

func cleanPHPDoc(text string) string {
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "@") {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
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
