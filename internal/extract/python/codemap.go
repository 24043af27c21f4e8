package python

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// symbolEntry is one code map entry, keyed "class:Name", "function:Name", or
// "method:Class.Name".
type symbolEntry struct {
	kind               string // "class" | "function" | "method"
	name               string
	lineno             int
	endLineno          int
	methods            []string
	instanceAttributes []string
	bases              []string
	node               *sitter.Node
}

// codeMap is the file-wide symbol table built once per file.
// renderedImports and moduleVars are computed once alongside it and carried
// here so the context pass doesn't need a separate tree walk per symbol.
type codeMap struct {
	entries         map[string]*symbolEntry
	order           []string
	renderedImports []string
	moduleVars      []string
}

func newCodeMap() *codeMap {
	return &codeMap{entries: make(map[string]*symbolEntry)}
}

func (cm *codeMap) add(key string, e *symbolEntry) {
	if _, exists := cm.entries[key]; !exists {
		cm.order = append(cm.order, key)
	}
	cm.entries[key] = e
}

func buildCodeMap(root *sitter.Node, source []byte) *codeMap {
	cm := newCodeMap()
	cm.renderedImports = renderedImports(root, source)
	cm.moduleVars = moduleLevelVariables(root, source)

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		def := child
		if child.Kind() == "decorated_definition" {
			def = innerDefinition(child)
			if def == nil {
				continue
			}
		}

		switch def.Kind() {
		case "function_definition":
			name := tsutil.NodeText(def.ChildByFieldName("name"), source)
			cm.add("function:"+name, &symbolEntry{
				kind: "function", name: name,
				lineno: tsutil.Line(def), endLineno: tsutil.EndLine(def), node: def,
			})
		case "class_definition":
			name := tsutil.NodeText(def.ChildByFieldName("name"), source)
			entry := &symbolEntry{
				kind: "class", name: name,
				lineno: tsutil.Line(def), endLineno: tsutil.EndLine(def), node: def,
				bases: classBases(def, source),
			}
			body := def.ChildByFieldName("body")
			if body != nil {
				for j := 0; j < int(body.ChildCount()); j++ {
					member := body.Child(uint(j))
					memberDef := member
					if member.Kind() == "decorated_definition" {
						memberDef = innerDefinition(member)
						if memberDef == nil {
							continue
						}
					}
					if memberDef.Kind() == "function_definition" {
						methodName := tsutil.NodeText(memberDef.ChildByFieldName("name"), source)
						entry.methods = append(entry.methods, methodName)
						cm.add("method:"+name+"."+methodName, &symbolEntry{
							kind: "method", name: methodName,
							lineno: tsutil.Line(memberDef), endLineno: tsutil.EndLine(memberDef), node: memberDef,
						})
					}
				}
				entry.instanceAttributes = instanceAttributes(body, source)
			}
			cm.add("class:"+name, entry)
		}
	}

	return cm
}

func classBases(classDef *sitter.Node, source []byte) []string {
	super := classDef.ChildByFieldName("superclasses")
	if super == nil {
		return nil
	}
	var bases []string
	for i := 0; i < int(super.ChildCount()); i++ {
		child := super.Child(uint(i))
		switch child.Kind() {
		case "identifier", "attribute":
			bases = append(bases, tsutil.NodeText(child, source))
		}
	}
	return bases
}

// renderedImports renders up to 10 import statements as display strings for
// the function/method context.
func renderedImports(root *sitter.Node, source []byte) []string {
	var out []string
	tsutil.Walk(root, func(n *sitter.Node) bool {
		if len(out) >= 10 {
			return false
		}
		switch n.Kind() {
		case "import_statement", "import_from_statement":
			out = append(out, tsutil.NodeText(n, source))
			return false
		}
		return true
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// moduleLevelVariables collects the names assigned at module (top) level.
func moduleLevelVariables(root *sitter.Node, source []byte) []string {
	var out []string
	seen := map[string]struct{}{}
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if child.Kind() != "expression_statement" || child.ChildCount() == 0 {
			continue
		}
		expr := child.Child(0)
		if expr.Kind() != "assignment" {
			continue
		}
		left := expr.ChildByFieldName("left")
		if left == nil || left.Kind() != "identifier" {
			continue
		}
		name := tsutil.NodeText(left, source)
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// instanceAttributes finds `self.x = ...` assignments anywhere in a class
// body, matching python_extractor.py's attribute discovery.
func instanceAttributes(classBody *sitter.Node, source []byte) []string {
	seen := map[string]struct{}{}
	var attrs []string
	tsutil.Walk(classBody, func(n *sitter.Node) bool {
		if n.Kind() == "assignment" {
			left := n.ChildByFieldName("left")
			if left != nil && left.Kind() == "attribute" {
				obj := left.ChildByFieldName("object")
				attr := left.ChildByFieldName("attribute")
				if obj != nil && attr != nil && tsutil.NodeText(obj, source) == "self" {
					name := tsutil.NodeText(attr, source)
					if _, ok := seen[name]; !ok {
						seen[name] = struct{}{}
						attrs = append(attrs, name)
					}
				}
			}
		}
		return true
	})
	return attrs
}
