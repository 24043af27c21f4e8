package python

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// emitFunction builds a function (or method, when className != "") Chunk
// from a function_definition node.
func (e *Extractor) emitFunction(node *sitter.Node, source []byte, lines []string, path, className string, cm *codeMap, rels map[string][]chunk.Relationship) *chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)

	kind := chunk.KindFunction
	fullName := name
	key := "function:" + name
	if className != "" {
		kind = chunk.KindMethod
		fullName = className + "." + name
		key = "method:" + className + "." + name
	}

	c := chunk.New(kind, name, path, tsutil.Line(node), "python")
	c.SetFullName(fullName)
	if className != "" {
		c.SetClassName(className)
	}
	c.RawText = tsutil.NodeText(node, source)
	c.SetDocstring(functionDocstring(node, source))
	c.SetParams(parseParams(node.ChildByFieldName("parameters"), source))

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		c.SetReturnType(tsutil.NodeText(ret, source))
	}

	c.SetBodyDigest(bodyDigest(node, source))
	applyFunctionPatterns(c, node, source)
	if rel, ok := rels[key]; ok {
		c.SetRelationships(rel)
	}
	attachFunctionContext(c, node, source, className, cm)

	return c
}

// emitClass builds a class Chunk and its method Chunks in body order.
func (e *Extractor) emitClass(node *sitter.Node, source []byte, lines []string, path string, cm *codeMap, rels map[string][]chunk.Relationship) []*chunk.Chunk {
	name := tsutil.NodeText(node.ChildByFieldName("name"), source)
	key := "class:" + name

	cc := chunk.New(chunk.KindClass, name, path, tsutil.Line(node), "python")
	cc.RawText = tsutil.NodeText(node, source)
	cc.SetDocstring(classDocstring(node, source))
	cc.SetBases(classBases(node, source))
	if entry, ok := cm.entries[key]; ok {
		cc.SetMethods(entry.methods)
		cc.SetClassAttributes(entry.instanceAttributes)
	}
	applyClassPatterns(cc, node, source, cm)
	if rel, ok := rels[key]; ok {
		cc.SetRelationships(rel)
	}
	attachClassContext(cc, name, cm)

	chunks := []*chunk.Chunk{cc}

	body := node.ChildByFieldName("body")
	if body == nil {
		return chunks
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(uint(i))
		memberDef := member
		if member.Kind() == "decorated_definition" {
			memberDef = innerDefinition(member)
			if memberDef == nil {
				continue
			}
		}
		if memberDef.Kind() != "function_definition" {
			continue
		}
		mc := e.emitFunction(memberDef, source, lines, path, name, cm, rels)
		if member.Kind() == "decorated_definition" {
			applyDecoratorPatterns(mc, member, source)
		}
		chunks = append(chunks, mc)
	}

	return chunks
}

func functionDocstring(node *sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	return firstStatementDocstring(body, source)
}

func classDocstring(node *sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	return firstStatementDocstring(body, source)
}

func firstStatementDocstring(block *sitter.Node, source []byte) string {
	if block == nil || block.ChildCount() == 0 {
		return ""
	}
	first := block.Child(0)
	if first.Kind() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	str := first.Child(0)
	if str.Kind() != "string" {
		return ""
	}
	return unquoteDocstring(tsutil.NodeText(str, source))
}

// parseParams renders the parameter list in source order, dropping the
// self/cls receiver.
func parseParams(paramsNode *sitter.Node, source []byte) []chunk.Param {
	if paramsNode == nil {
		return nil
	}

	var params []chunk.Param
	for i := 0; i < int(paramsNode.ChildCount()); i++ {
		child := paramsNode.Child(uint(i))
		switch child.Kind() {
		case "identifier":
			name := tsutil.NodeText(child, source)
			if name == "self" || name == "cls" {
				continue
			}
			params = append(params, chunk.Param{Name: name})
		case "typed_parameter":
			name := tsutil.NodeText(child.ChildByFieldName("name"), source)
			if name == "" && child.ChildCount() > 0 {
				name = tsutil.NodeText(child.Child(0), source)
			}
			typ := tsutil.NodeText(child.ChildByFieldName("type"), source)
			params = append(params, chunk.Param{Name: name, Type: typ})
		case "default_parameter":
			name := tsutil.NodeText(child.ChildByFieldName("name"), source)
			def := tsutil.NodeText(child.ChildByFieldName("value"), source)
			params = append(params, chunk.Param{Name: name, Default: def})
		case "typed_default_parameter":
			name := tsutil.NodeText(child.ChildByFieldName("name"), source)
			typ := tsutil.NodeText(child.ChildByFieldName("type"), source)
			def := tsutil.NodeText(child.ChildByFieldName("value"), source)
			params = append(params, chunk.Param{Name: name, Type: typ, Default: def})
		case "list_splat_pattern":
			params = append(params, chunk.Param{Name: "*" + strings.TrimPrefix(tsutil.NodeText(child, source), "*")})
		case "dictionary_splat_pattern":
			params = append(params, chunk.Param{Name: "**" + strings.TrimPrefix(tsutil.NodeText(child, source), "**")})
		}
	}
	return params
}

// bodyDigest renders a short, stable summary of a callable's body for
// search, capped to keep embeddable text small.
func bodyDigest(node *sitter.Node, source []byte) string {
	text := tsutil.NodeText(node, source)
	const max = 400
	if len(text) > max {
		return text[:max]
	}
	return text
}
