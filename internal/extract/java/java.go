// Package java implements the Java extractor: method signatures, the
// enclosing class/interface/enum name, the leading Javadoc comment, and a
// body digest.
package java

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javalang "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// Extractor implements extract.Extractor for Java source files.
type Extractor struct {
	lang *sitter.Language
}

// New returns a Java extractor.
func New() *Extractor {
	return &Extractor{lang: sitter.NewLanguage(javalang.Language())}
}

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	tree := tsutil.Default.Parse("java", e.lang, source)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	var chunks []*chunk.Chunk
	tsutil.Walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class_declaration", "interface_declaration", "enum_declaration":
			chunks = append(chunks, emitType(n, source, path))
			if body := n.ChildByFieldName("body"); body != nil {
				className := tsutil.NodeText(n.ChildByFieldName("name"), source)
				for i := 0; i < int(body.ChildCount()); i++ {
					member := body.Child(uint(i))
					if member.Kind() == "method_declaration" || member.Kind() == "constructor_declaration" {
						chunks = append(chunks, emitMethod(member, source, path, className))
					}
				}
			}
			return false
		}
		return true
	})

	return chunks, nil
}

func emitType(node *sitter.Node, source []byte, path string) *chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)
	c := chunk.New(chunk.KindClass, name, path, tsutil.Line(node), "java")
	c.RawText = tsutil.NodeText(node, source)
	c.SetDocstring(leadingJavadoc(node, source))
	return c
}

func emitMethod(node *sitter.Node, source []byte, path, className string) *chunk.Chunk {
	nameNode := node.ChildByFieldName("name")
	name := className
	if nameNode != nil {
		name = tsutil.NodeText(nameNode, source)
	}

	c := chunk.New(chunk.KindMethod, name, path, tsutil.Line(node), "java")
	c.SetClassName(className)
	c.SetFullName(className + "." + name)
	c.RawText = tsutil.NodeText(node, source)
	c.SetSignature(methodSignature(node, source, className, name))
	c.SetDocstring(leadingJavadoc(node, source))
	c.SetBodyDigest(bodyDigest(node, source))
	return c
}

func methodSignature(node *sitter.Node, source []byte, className, name string) string {
	typeNode := node.ChildByFieldName("type")
	paramsNode := node.ChildByFieldName("parameters")

	sig := className + "." + name
	if paramsNode != nil {
		sig += tsutil.NodeText(paramsNode, source)
	} else {
		sig += "()"
	}
	if typeNode != nil {
		sig += ": " + tsutil.NodeText(typeNode, source)
	}
	return sig
}

// leadingJavadoc returns the text of a single `/** ... */` block comment
// immediately preceding node, or "" if absent or not a Javadoc comment.
func leadingJavadoc(node *sitter.Node, source []byte) string {
	comments := tsutil.PrecedingComments(node, "block_comment")
	if len(comments) == 0 {
		return ""
	}
	last := comments[len(comments)-1]
	text := tsutil.NodeText(last, source)
	if !strings.HasPrefix(text, "/**") {
		return ""
	}
	return cleanJavadoc(text)
}

// cleanJavadoc strips the comment delimiters and leading `*` continuation
// markers from each line.
func cleanJavadoc(text string) string {
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}

// bodyDigest renders a short, stable summary of a method's body for search,
// capped to keep embeddable text small.
func bodyDigest(node *sitter.Node, source []byte) string {
	text := tsutil.NodeText(node, source)
	const max = 400
	if len(text) > max {
		return text[:max]
	}
	return text
}
