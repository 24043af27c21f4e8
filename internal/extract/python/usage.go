package python

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/extract/tsutil"
)

// attachUsage analyzes call sites: for every call node whose target resolves
// to a function/method defined in the file, accumulate call_count, callers,
// per-site arg_patterns, and context_keywords, then attach `common_usage`
// summaries to the corresponding Chunk.
func attachUsage(root *sitter.Node, source []byte, chunks []*chunk.Chunk) {
	type site struct {
		caller  string
		pattern chunk.ArgPattern
		context []string
	}
	usage := map[string][]site{}

	byFullName := map[string]*chunk.Chunk{}
	for _, c := range chunks {
		if c.Kind == chunk.KindFunction {
			byFullName[c.Name] = c
		} else if c.Kind == chunk.KindMethod {
			byFullName[c.Name] = c // last-class-wins for bare-name method resolution
		}
	}
	if len(byFullName) == 0 {
		return
	}

	var walk func(n *sitter.Node, enclosing string)
	walk = func(n *sitter.Node, enclosing string) {
		if n == nil {
			return
		}
		next := enclosing
		if n.Kind() == "function_definition" {
			next = tsutil.NodeText(n.ChildByFieldName("name"), source)
		}

		if n.Kind() == "call" {
			if target, _, ok := callTarget(n, source); ok {
				if _, known := byFullName[target]; known {
					args := n.ChildByFieldName("arguments")
					pattern := classifyArgs(args, source)
					ctxKeywords := callContextKeywords(n, source)
					usage[target] = append(usage[target], site{caller: enclosing, pattern: pattern, context: ctxKeywords})
				}
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(uint(i)), next)
		}
	}
	walk(root, "")

	for target, sites := range usage {
		c, ok := byFullName[target]
		if !ok {
			continue
		}
		u := &chunk.Usage{CallCount: len(sites)}
		seenCaller := map[string]struct{}{}
		patternCounts := map[string]int{}
		kwargCounts := map[string]int{}
		ctxCounts := map[string]int{}
		var ctxOrder []string
		for _, s := range sites {
			if s.caller != "" {
				if _, ok := seenCaller[s.caller]; !ok {
					seenCaller[s.caller] = struct{}{}
					u.Callers = append(u.Callers, s.caller)
				}
			}
			u.ArgPatterns = append(u.ArgPatterns, s.pattern)
			patternCounts[s.pattern.Pattern]++
			for _, kw := range s.pattern.KeywordArgs {
				kwargCounts[kw]++
			}
			// Count each keyword once per site so a doubly nested loop
			// doesn't outvote every other site.
			siteSeen := map[string]struct{}{}
			for _, kw := range s.context {
				if _, ok := siteSeen[kw]; ok {
					continue
				}
				siteSeen[kw] = struct{}{}
				if ctxCounts[kw] == 0 {
					ctxOrder = append(ctxOrder, kw)
				}
				ctxCounts[kw]++
			}
		}

		total := len(sites)
		for _, kw := range ctxOrder {
			if float64(ctxCounts[kw])/float64(total) > 0.3 {
				u.ContextKeywords = append(u.ContextKeywords, kw)
			}
		}

		var common []string
		for pattern, count := range patternCounts {
			if float64(count)/float64(total) > 0.5 {
				common = append(common, describePattern(pattern))
			}
		}
		var kwSummary []string
		for kw, count := range kwargCounts {
			if float64(count)/float64(total) > 0.3 {
				kwSummary = append(kwSummary, kw)
			}
		}
		if len(kwSummary) > 0 {
			common = append(common, "commonly used with keywords: "+strings.Join(kwSummary, ", "))
		}
		if len(u.ContextKeywords) > 0 {
			common = append(common, "commonly called "+strings.Join(u.ContextKeywords, ", "))
		}
		u.CommonUsage = common

		c.SetUsage(u)
	}
}

func describePattern(pattern string) string {
	switch pattern {
	case "keyword_only":
		return "typically called with keyword arguments only"
	case "positional_only":
		return "typically called with positional arguments only"
	case "no_args":
		return "typically called with no arguments"
	case "mixed":
		return "typically called with mixed positional and keyword arguments"
	}
	return fmt.Sprintf("typically called as %s", pattern)
}

// classifyArgs classifies one call site's argument shape.
func classifyArgs(args *sitter.Node, source []byte) chunk.ArgPattern {
	p := chunk.ArgPattern{}
	if args == nil {
		p.Pattern = "no_args"
		return p
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		child := args.Child(uint(i))
		switch child.Kind() {
		case "keyword_argument":
			p.KeywordCount++
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				p.KeywordArgs = append(p.KeywordArgs, tsutil.NodeText(nameNode, source))
			}
		case "(", ")", ",":
			// punctuation, skip
		default:
			p.PositionalCount++
		}
	}

	switch {
	case p.PositionalCount == 0 && p.KeywordCount == 0:
		p.Pattern = "no_args"
	case p.PositionalCount > 0 && p.KeywordCount == 0:
		p.Pattern = "positional_only"
	case p.PositionalCount == 0 && p.KeywordCount > 0:
		p.Pattern = "keyword_only"
	default:
		p.Pattern = "mixed"
	}
	return p
}

// callContextKeywords derives keywords from a call's syntactic position:
// loop/exception/context-manager ancestry, assignment target, and any name
// tokens from an enclosing `if` test.
func callContextKeywords(call *sitter.Node, source []byte) []string {
	var keywords []string

	for ancestor := call.Parent(); ancestor != nil; ancestor = ancestor.Parent() {
		switch ancestor.Kind() {
		case "for_statement", "while_statement":
			keywords = append(keywords, "in_loop")
		case "try_statement":
			keywords = append(keywords, "in_exception_handler")
		case "except_clause":
			keywords = append(keywords, "in_error_handler")
		case "with_statement":
			keywords = append(keywords, "in_context_manager")
		case "assignment":
			left := ancestor.ChildByFieldName("left")
			if left != nil && left.Kind() == "identifier" {
				keywords = append(keywords, "assigned_to_"+tsutil.NodeText(left, source))
			}
		case "if_statement":
			cond := ancestor.ChildByFieldName("condition")
			tsutil.Walk(cond, func(n *sitter.Node) bool {
				if n.Kind() == "identifier" {
					keywords = append(keywords, tsutil.NodeText(n, source))
				}
				return true
			})
		case "function_definition", "class_definition":
			return keywords
		}
	}
	return keywords
}
