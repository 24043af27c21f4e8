package python

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// attachFunctionContext summarizes a function/method's surroundings: up to
// 10 rendered imports, module-level variable names, and neighboring
// symbols (other top-level functions within +/-20 lines for functions, or
// sibling method names and instance attributes for methods).
func attachFunctionContext(c *chunk.Chunk, node *sitter.Node, source []byte, className string, cm *codeMap) {
	ctx := &chunk.Context{
		Imports:         cm.renderedImports,
		ModuleVariables: cm.moduleVars,
	}

	if className == "" {
		line := tsutil.Line(node)
		for _, entry := range cm.entries {
			if entry.kind != "function" || entry.name == c.Name {
				continue
			}
			if abs(entry.lineno-line) <= 20 {
				ctx.NeighboringFunctions = append(ctx.NeighboringFunctions, entry.name)
			}
		}
	} else {
		if entry, ok := cm.entries["class:"+className]; ok {
			for _, m := range entry.methods {
				if m != c.Name {
					ctx.OtherMethods = append(ctx.OtherMethods, m)
				}
			}
			ctx.InstanceAttributes = entry.instanceAttributes
		}
	}

	c.SetContext(ctx)
}

// attachClassContext summarizes a class's surroundings: base classes and any
// classes in the file that name this class as a base (subclasses).
func attachClassContext(c *chunk.Chunk, name string, cm *codeMap) {
	ctx := &chunk.Context{}

	if entry, ok := cm.entries["class:"+name]; ok {
		ctx.BaseClasses = entry.bases
	}

	for _, entry := range cm.entries {
		if entry.kind != "class" || entry.name == name {
			continue
		}
		for _, base := range entry.bases {
			if base == name {
				ctx.Subclasses = append(ctx.Subclasses, entry.name)
			}
		}
	}

	c.SetContext(ctx)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
