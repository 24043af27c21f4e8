// Package tsutil holds the tree-sitter walking helpers shared by the Python
// extractor and the C/Java/PHP/Ruby/Rust extractors.
package tsutil

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeText returns the source text spanned by node.
func NodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// Line returns node's 1-indexed start line.
func Line(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.StartPosition().Row) + 1
}

// EndLine returns node's 1-indexed end line.
func EndLine(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.EndPosition().Row) + 1
}

// Walk recursively visits node and its descendants, depth-first. The
// visitor returns false to skip a node's children.
func Walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(uint(i)), visitor)
	}
}

// Children returns every direct child of node whose Kind equals kind.
func Children(node *sitter.Node, kind string) []*sitter.Node {
	var out []*sitter.Node
	if node == nil {
		return out
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			out = append(out, child)
		}
	}
	return out
}

// FirstChild returns the first direct child of node whose Kind equals kind,
// or nil.
func FirstChild(node *sitter.Node, kind string) *sitter.Node {
	children := Children(node, kind)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// Parse parses source with lang and returns the resulting tree. The
// caller owns tree and must Close it.
func Parse(lang *sitter.Language, source []byte) *sitter.Tree {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)
	return parser.Parse(source, nil)
}

// PrecedingComments returns the contiguous run of node's immediately
// preceding siblings whose Kind is commentKind, oldest first. Used by the
// extended-language extractors to find a function/class's leading doc
// comment (Javadoc/PHPDoc block comments, Rustdoc `///` runs, Ruby `#` runs).
func PrecedingComments(node *sitter.Node, commentKind string) []*sitter.Node {
	var run []*sitter.Node
	for sibling := node.PrevSibling(); sibling != nil; sibling = sibling.PrevSibling() {
		if sibling.Kind() != commentKind {
			break
		}
		run = append(run, sibling)
	}

	for i, j := 0, len(run)-1; i < j; i, j = i+1, j-1 {
		run[i], run[j] = run[j], run[i]
	}
	return run
}
