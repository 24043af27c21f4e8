package python

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

var crudPrefixes = map[string]string{
	"create": "create", "add": "create", "insert": "create", "new": "create",
	"read": "read", "get": "read", "fetch": "read", "retrieve": "read", "find": "read", "search": "read",
	"update": "update", "modify": "update", "change": "update", "edit": "update", "set": "update",
	"delete": "delete", "remove": "delete", "drop": "delete", "clear": "delete",
}

// applyFunctionPatterns runs the name-prefix, body, and dunder-method
// detectors for a function/method Chunk.
func applyFunctionPatterns(c *chunk.Chunk, node *sitter.Node, source []byte) {
	name := c.Name

	switch {
	case strings.HasPrefix(name, "get_"):
		c.AddPattern("accessor")
	case strings.HasPrefix(name, "set_"):
		c.AddPattern("mutator")
	}

	if strings.HasPrefix(name, "validate_") || strings.HasPrefix(name, "check_") ||
		strings.HasPrefix(name, "is_valid_") || strings.HasPrefix(name, "is_") {
		c.AddPattern("validation")
	}

	if (strings.HasPrefix(name, "create_") || strings.HasPrefix(name, "build_") || strings.HasPrefix(name, "make_")) &&
		bodyHasReturn(node) {
		c.AddPattern("factory method")
	}

	switch name {
	case "__init__":
		c.AddPattern("constructor")
	case "__iter__", "__next__":
		c.AddPattern("iterator")
	case "__enter__", "__exit__":
		c.AddPattern("context manager")
	}

	for prefix, op := range crudPrefixes {
		if strings.HasPrefix(name, prefix+"_") || name == prefix {
			c.AddPattern("CRUD " + op + " operation")
			break
		}
	}

	if bodyHasTry(node) {
		c.AddPattern("error handling")
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, "callback") || strings.Contains(lower, "handler") || strings.Contains(lower, "on_") {
		c.AddPattern("callback/event handler")
	}
}

// applyDecoratorPatterns runs the decorator-based detectors, inspecting the
// decorators attached to a decorated_definition node.
func applyDecoratorPatterns(c *chunk.Chunk, decorated *sitter.Node, source []byte) {
	for _, dec := range tsutil.Children(decorated, "decorator") {
		text := tsutil.NodeText(dec, source)
		lower := strings.ToLower(text)

		switch {
		case text == "@property":
			c.AddPattern("property getter")
		case strings.HasSuffix(text, ".setter"):
			c.AddPattern("property setter")
		case strings.HasSuffix(text, ".deleter"):
			c.AddPattern("property deleter")
		}

		for _, verb := range []string{"route", "get", "post", "put", "delete", "patch"} {
			if strings.Contains(lower, "@app."+verb) {
				c.AddPattern("Flask endpoint")
			}
			if strings.HasPrefix(lower, "@router."+verb) {
				c.AddPattern("FastAPI endpoint")
			}
		}
		if strings.Contains(lower, "@app.route") {
			c.AddPattern("Flask endpoint")
		}

		switch {
		case strings.Contains(lower, "@login_required"),
			strings.Contains(lower, "@permission_required"),
			strings.Contains(lower, "@api_view"),
			strings.Contains(lower, "@require_http_methods"):
			c.AddPattern("Django view")
		}
	}
}

// applyClassPatterns runs the class-name-substring and structural detectors
// (singleton, enumeration, data container).
func applyClassPatterns(c *chunk.Chunk, node *sitter.Node, source []byte, cm *codeMap) {
	lower := strings.ToLower(c.Name)

	nameTags := []struct {
		substrs []string
		tag     string
	}{
		{[]string{"factory"}, "factory"},
		{[]string{"adapter"}, "adapter"},
		{[]string{"decorator"}, "decorator"},
		{[]string{"observer", "listener", "subscriber"}, "observer"},
		{[]string{"strategy"}, "strategy"},
		{[]string{"command", "action"}, "command"},
		{[]string{"proxy"}, "proxy"},
		{[]string{"builder"}, "builder"},
		{[]string{"composite"}, "composite"},
		{[]string{"iterator"}, "iterator"},
		{[]string{"prototype"}, "prototype"},
		{[]string{"state"}, "state"},
		{[]string{"template"}, "template"},
		{[]string{"visitor"}, "visitor"},
		{[]string{"repository", "dao", "data"}, "data access object"},
		{[]string{"service"}, "service"},
		{[]string{"controller"}, "controller"},
		{[]string{"model"}, "model"},
		{[]string{"util", "utils", "helper", "helpers"}, "utility"},
		{[]string{"mixin", "interface"}, "mixin"},
		{[]string{"exception", "error"}, "exception"},
		{[]string{"abstract", "abc"}, "abstract"},
	}

	for _, t := range nameTags {
		for _, s := range t.substrs {
			if strings.Contains(lower, s) {
				c.AddPattern(t.tag)
				break
			}
		}
	}

	entry, ok := cm.entries["class:"+c.Name]
	if !ok {
		return
	}

	if classHasInstanceVar(node, source, "_instance") || classHasMethod(node, source, "__new__") {
		c.AddPattern("singleton")
	}

	if countUppercaseClassVars(node, source) >= 3 {
		c.AddPattern("enumeration")
	}

	if len(entry.instanceAttributes) > 0 && onlyDataMethods(entry.methods) {
		c.AddPattern("data container")
	}
}

func bodyHasReturn(node *sitter.Node) bool {
	found := false
	tsutil.Walk(node.ChildByFieldName("body"), func(n *sitter.Node) bool {
		if n.Kind() == "return_statement" {
			found = true
			return false
		}
		return true
	})
	return found
}

func bodyHasTry(node *sitter.Node) bool {
	found := false
	tsutil.Walk(node.ChildByFieldName("body"), func(n *sitter.Node) bool {
		if n.Kind() == "try_statement" {
			found = true
			return false
		}
		return true
	})
	return found
}

func classHasInstanceVar(classDef *sitter.Node, source []byte, name string) bool {
	body := classDef.ChildByFieldName("body")
	found := false
	tsutil.Walk(body, func(n *sitter.Node) bool {
		if n.Kind() == "assignment" {
			left := n.ChildByFieldName("left")
			if left != nil && tsutil.NodeText(left, source) == name {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func classHasMethod(classDef *sitter.Node, source []byte, name string) bool {
	body := classDef.ChildByFieldName("body")
	if body == nil {
		return false
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(uint(i))
		if member.Kind() != "function_definition" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		if tsutil.NodeText(nameNode, source) == name {
			return true
		}
	}
	return false
}

func countUppercaseClassVars(classDef *sitter.Node, source []byte) int {
	body := classDef.ChildByFieldName("body")
	count := 0
	if body == nil {
		return 0
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(uint(i))
		if member.Kind() != "expression_statement" || member.ChildCount() == 0 {
			continue
		}
		expr := member.Child(0)
		if expr.Kind() != "assignment" {
			continue
		}
		left := expr.ChildByFieldName("left")
		if left == nil || left.Kind() != "identifier" {
			continue
		}
		name := tsutil.NodeText(left, source)
		if name == strings.ToUpper(name) && name != "" {
			count++
		}
	}
	return count
}

func onlyDataMethods(methods []string) bool {
	for _, m := range methods {
		if !strings.HasPrefix(m, "__") {
			return false
		}
	}
	return true
}
