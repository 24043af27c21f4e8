package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/lexical"
	"github.com/bivav/code-cognitio/internal/vectorindex"
)

// AddSearchCodeTool registers the `search_code` tool, mirroring the
// `search` CLI verb's parameter set.
func AddSearchCodeTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool("search_code",
		mcp.WithDescription("Search the code-cognitio index for functions, classes, and documentation sections relevant to a natural-language query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language search query")),
		mcp.WithNumber("top_k", mcp.Description("Maximum number of results (default 5)")),
		mcp.WithString("filter", mcp.Description(`Content filter: "code" or "documentation"`)),
		mcp.WithNumber("min_score", mcp.Description("Minimum similarity score, 0.0-1.0")),
		mcp.WithString("type", mcp.Description("Chunk kind filter: function|method|class|module")),
		mcp.WithString("param_name", mcp.Description("Filter by parameter name substring")),
		mcp.WithString("param_type", mcp.Description("Filter by parameter type substring")),
		mcp.WithString("return_type", mcp.Description("Filter by return type substring")),
		mcp.WithBoolean("hybrid", mcp.Description("Blend in a keyword search over the lexical index, when present")),
	)

	s.AddTool(tool, createSearchCodeHandler(srv))
}

type searchCodeArgs struct {
	Query      string
	TopK       int
	Filter     string
	MinScore   float32
	Type       string
	ParamName  string
	ParamType  string
	ReturnType string
	Hybrid     bool
}

func parseSearchCodeArgs(raw map[string]interface{}) (searchCodeArgs, error) {
	var a searchCodeArgs
	a.TopK = 5

	query, ok := raw["query"].(string)
	if !ok || query == "" {
		return a, fmt.Errorf("query is required")
	}
	a.Query = query

	if v, ok := raw["top_k"].(float64); ok && v > 0 {
		a.TopK = int(v)
	}
	if v, ok := raw["filter"].(string); ok {
		a.Filter = v
	}
	if v, ok := raw["min_score"].(float64); ok {
		a.MinScore = float32(v)
	}
	if v, ok := raw["type"].(string); ok {
		a.Type = v
	}
	if v, ok := raw["param_name"].(string); ok {
		a.ParamName = v
	}
	if v, ok := raw["param_type"].(string); ok {
		a.ParamType = v
	}
	if v, ok := raw["return_type"].(string); ok {
		a.ReturnType = v
	}
	if v, ok := raw["hybrid"].(bool); ok {
		a.Hybrid = v
	}

	return a, nil
}

// toolResult is the JSON shape returned in the tool's text content, one
// entry per matching chunk.
type toolResult struct {
	Score          float32 `json:"score"`
	Kind           string  `json:"kind"`
	Name           string  `json:"name"`
	FilePath       string  `json:"file_path"`
	Lineno         int     `json:"lineno"`
	DisplayContent string  `json:"display_content"`
}

func createSearchCodeHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments"), nil
		}

		args, err := parseSearchCodeArgs(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var contentFilter chunk.ContentType
		switch args.Filter {
		case "code":
			contentFilter = chunk.ContentCode
		case "documentation":
			contentFilter = chunk.ContentDocumentation
		case "":
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid filter %q: must be \"code\" or \"documentation\"", args.Filter)), nil
		}

		q := vectorindex.Query{
			Text:          args.Query,
			TopK:          args.TopK,
			ContentFilter: contentFilter,
			MinScore:      args.MinScore,
			TypeFilter:    args.Type,
			ParamName:     args.ParamName,
			ParamType:     args.ParamType,
			ReturnType:    args.ReturnType,
		}

		results, err := srv.index.Search(ctx, srv.provider, q)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		if args.Hybrid && srv.lexical != nil {
			results = mergeHybrid(srv.lexical, srv.index, results, q)
		}

		out := make([]toolResult, 0, len(results))
		for _, r := range results {
			out = append(out, toolResult{
				Score:          r.Score,
				Kind:           string(r.Chunk.Kind),
				Name:           r.Chunk.Name,
				FilePath:       r.Chunk.FilePath,
				Lineno:         r.Chunk.Lineno,
				DisplayContent: r.DisplayContent,
			})
		}

		jsonData, err := json.Marshal(out)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshaling results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func mergeHybrid(lex *lexical.Index, idx *vectorindex.Index, vecResults []vectorindex.Result, q vectorindex.Query) []vectorindex.Result {
	hits, err := lex.Search(q.Text, q.TopK*2)
	if err != nil {
		return vecResults
	}
	return lexical.Merge(vecResults, hits, idx.ChunkByID, q, q.TopK)
}
