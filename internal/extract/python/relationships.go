package python

import (
	"strings"

	"github.com/dominikbraun/graph"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// buildRelationships makes a single pass over the file building `calls` and
// `inherits_from` edges keyed by the code map identifiers, carrying the
// enclosing function/class on a stack instead of re-walking the tree per
// call site.
//
// Edges are recorded in a directed graph keyed by the code map's symbol
// identifiers, then flattened into the per-symbol []chunk.Relationship the
// emitter attaches to each Chunk.
func buildRelationships(root *sitter.Node, source []byte, cm *codeMap) map[string][]chunk.Relationship {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, key := range cm.order {
		_ = g.AddVertex(key)
	}

	// inherits_from: one edge per class per base that names a class in the
	// same file.
	for key, entry := range cm.entries {
		if entry.kind != "class" {
			continue
		}
		for _, base := range entry.bases {
			baseKey := "class:" + base
			if _, ok := cm.entries[baseKey]; !ok {
				continue
			}
			_ = g.AddEdge(key, baseKey,
				graph.EdgeAttribute("type", "inherits_from"),
				graph.EdgeAttribute("display", base),
			)
		}
	}

	var walk func(n *sitter.Node, enclosing string)
	walk = func(n *sitter.Node, enclosing string) {
		if n == nil {
			return
		}

		next := enclosing
		switch n.Kind() {
		case "class_definition":
			next = "class:" + tsutil.NodeText(n.ChildByFieldName("name"), source)
		case "function_definition":
			name := tsutil.NodeText(n.ChildByFieldName("name"), source)
			if strings.HasPrefix(enclosing, "class:") {
				next = "method:" + strings.TrimPrefix(enclosing, "class:") + "." + name
			} else {
				next = enclosingKeyFor(cm, name)
			}
		case "call":
			if enclosing != "" {
				if target, display, ok := callTarget(n, source); ok && isFileLocalTarget(cm, target) {
					targetKey := symbolKeyForCallTarget(cm, target)
					if _, err := g.Vertex(targetKey); err != nil {
						_ = g.AddVertex(targetKey)
					}
					_ = g.AddEdge(enclosing, targetKey,
						graph.EdgeAttribute("type", "calls"),
						graph.EdgeAttribute("target", target),
						graph.EdgeAttribute("display", display),
					)
				}
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(uint(i)), next)
		}
	}

	walk(root, "")

	return relationshipsFromGraph(g)
}

// relationshipsFromGraph flattens the directed edge graph into the
// per-symbol relationship lists the emitter expects, reading each edge's
// attributes rather than re-deriving them from the source.
func relationshipsFromGraph(g graph.Graph[string, string]) map[string][]chunk.Relationship {
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil
	}

	rels := make(map[string][]chunk.Relationship)
	for from, edges := range adjacency {
		for to, edge := range edges {
			attrs := edge.Properties.Attributes
			rel := chunk.Relationship{
				Type:        attrs["type"],
				Target:      attrs["target"],
				DisplayName: attrs["display"],
			}
			if rel.Target == "" {
				rel.Target = to
			}
			rels[from] = append(rels[from], rel)
		}
	}
	return rels
}

// enclosingKeyFor resolves the name of a function_definition that is not
// directly inside a class body to its code_map key: the top-level function
// key when one exists, otherwise the key of some method with that name.
// Methods directly inside a class body are keyed by walk from the enclosing
// class instead.
func enclosingKeyFor(cm *codeMap, name string) string {
	if _, ok := cm.entries["function:"+name]; ok {
		return "function:" + name
	}
	for key, entry := range cm.entries {
		if entry.kind == "method" && entry.name == name {
			return key
		}
	}
	return "function:" + name
}

// symbolKeyForCallTarget resolves a call target name to its code_map key,
// used for AddEdge's destination vertex identity.
func symbolKeyForCallTarget(cm *codeMap, target string) string {
	if _, ok := cm.entries["function:"+target]; ok {
		return "function:" + target
	}
	for key, entry := range cm.entries {
		if entry.kind == "method" && entry.name == target {
			return key
		}
	}
	return "function:" + target
}

// isFileLocalTarget reports whether target names any function or method
// defined in the file; calls to anything else are not recorded.
func isFileLocalTarget(cm *codeMap, target string) bool {
	if _, ok := cm.entries["function:"+target]; ok {
		return true
	}
	for _, entry := range cm.entries {
		if entry.kind == "method" && entry.name == target {
			return true
		}
	}
	return false
}

// callTarget resolves a call node's target to a bare name or the attribute
// of an object (obj.method).
func callTarget(call *sitter.Node, source []byte) (target, display string, ok bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return "", "", false
	}
	switch fn.Kind() {
	case "identifier":
		name := tsutil.NodeText(fn, source)
		return name, name, true
	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr == nil {
			return "", "", false
		}
		name := tsutil.NodeText(attr, source)
		return name, tsutil.NodeText(fn, source), true
	}
	return "", "", false
}
