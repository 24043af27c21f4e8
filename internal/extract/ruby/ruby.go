// Package ruby implements the Ruby extractor: method signatures, the
// enclosing class/module name, the leading `#`-comment run, and a body
// digest.
package ruby

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rubylang "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// Extractor implements extract.Extractor for Ruby source files.
type Extractor struct {
	lang *sitter.Language
}

// New returns a Ruby extractor.
func New() *Extractor {
	return &Extractor{lang: sitter.NewLanguage(rubylang.Language())}
}

// Extract implements extract.Extractor.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]*chunk.Chunk, error) {
	tree := tsutil.Default.Parse("ruby", e.lang, source)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	var chunks []*chunk.Chunk
	tsutil.Walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class", "module":
			chunks = append(chunks, emitClass(n, source, path))
			if body := tsutil.FirstChild(n, "body_statement"); body != nil {
				className := classOrModuleName(n, source)
				for i := 0; i < int(body.ChildCount()); i++ {
					member := body.Child(uint(i))
					if member.Kind() == "method" {
						chunks = append(chunks, emitMethod(member, source, path, className))
					}
				}
			}
			return false
		case "method":
			chunks = append(chunks, emitMethod(n, source, path, ""))
			return false
		}
		return true
	})

	return chunks, nil
}

func classOrModuleName(node *sitter.Node, source []byte) string {
	return tsutil.NodeText(node.ChildByFieldName("name"), source)
}

func emitClass(node *sitter.Node, source []byte, path string) *chunk.Chunk {
	name := classOrModuleName(node, source)
	c := chunk.New(chunk.KindClass, name, path, tsutil.Line(node), "ruby")
	c.RawText = tsutil.NodeText(node, source)
	c.SetDocstring(leadingHashComment(node, source))
	return c
}

func emitMethod(node *sitter.Node, source []byte, path, className string) *chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)

	kind := chunk.KindFunction
	if className != "" {
		kind = chunk.KindMethod
	}

	c := chunk.New(kind, name, path, tsutil.Line(node), "ruby")
	if className != "" {
		c.SetClassName(className)
		c.SetFullName(className + "#" + name)
	} else {
		c.SetFullName(name)
	}
	c.RawText = tsutil.NodeText(node, source)
	c.SetSignature(methodSignature(node, source, className, name))
	c.SetDocstring(leadingHashComment(node, source))
	c.SetBodyDigest(bodyDigest(node, source))
	return c
}

func methodSignature(node *sitter.Node, source []byte, className, name string) string {
	paramsNode := node.ChildByFieldName("parameters")

	sig := name
	if className != "" {
		sig = className + "#" + name
	}
	if paramsNode != nil {
		sig += tsutil.NodeText(paramsNode, source)
	} else {
		sig += "()"
	}
	return sig
}

// leadingHashComment returns the text of the contiguous run of `#` comments
// immediately above node, joined with spaces, or "" if there is none.
func leadingHashComment(node *sitter.Node, source []byte) string {
	comments := tsutil.PrecedingComments(node, "comment")
	if len(comments) == 0 && node.PrevSibling() == nil {
		// Comments above the first statement of a class/module body sit
		// before the body_statement node rather than inside it.
		if parent := node.Parent(); parent != nil && parent.Kind() == "body_statement" {
			comments = tsutil.PrecedingComments(parent, "comment")
		}
	}
	if len(comments) == 0 {
		return ""
	}
	var lines []string
	for _, comment := range comments {
		text := strings.TrimSpace(tsutil.NodeText(comment, source))
		text = strings.TrimSpace(strings.TrimPrefix(text, "#"))
		if text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, " ")
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
