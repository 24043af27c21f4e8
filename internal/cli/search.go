package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/config"
	"github.com/bivav/code-cognitio/internal/embed"
	"github.com/bivav/code-cognitio/internal/lexical"
	"github.com/bivav/code-cognitio/internal/logging"
	"github.com/bivav/code-cognitio/internal/vectorindex"
)

var (
	searchDataDir    string
	searchTopK       int
	searchFilter     string
	searchMinScore   float32
	searchType       string
	searchParamType  string
	searchParamName  string
	searchReturnType string
	searchJSON       bool
	searchHybrid     bool
)

// searchCmd runs a filtered nearest-neighbor query over a built index.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the built index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.Default()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitInvalidArg)
		}
		applyDataDir(cfg, searchDataDir, cmd.Flags().Changed("data-dir"))

		contentFilter, err := parseContentFilter(searchFilter)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitInvalidArg)
		}

		idx, err := vectorindex.Load(cfg.DataDir, cfg.EmbedderIdentifier, embed.DefaultDimensions, logger)
		if err != nil {
			logger.Warnf("no index found under %s: %v", cfg.DataDir, err)
			emitResults(nil, searchJSON)
			os.Exit(exitIndexMissing)
		}

		provider := embed.NewHTTPProvider(cfg.EmbedderEndpoint, idx.Dimension)
		defer provider.Close()

		q := vectorindex.Query{
			Text:                args[0],
			TopK:                searchTopK,
			ContentFilter:       contentFilter,
			MinScore:            searchMinScore,
			TypeFilter:          searchType,
			ParamName:           searchParamName,
			ParamType:           searchParamType,
			ReturnType:          searchReturnType,
			OverFetchMultiplier: cfg.OverFetchMultiplier,
		}

		results, err := idx.Search(context.Background(), provider, q)
		if err != nil {
			fmt.Fprintln(os.Stderr, "search failed:", err)
			os.Exit(exitBuildIOFailure)
		}

		if searchHybrid {
			results = runHybrid(cfg, idx, results, q, logger)
		}

		emitResults(results, searchJSON)
		os.Exit(exitSuccess)
	},
}

// runHybrid blends the vector results with a bleve keyword pass when
// `--hybrid` is set. A missing lexical index is logged at INFO and skipped — hybrid
// search degrades to vector-only rather than failing the command, since the
// adjunct file is optional.
func runHybrid(cfg *config.Config, idx *vectorindex.Index, vecResults []vectorindex.Result, q vectorindex.Query, logger *logging.Logger) []vectorindex.Result {
	lex, err := lexical.Load(cfg.DataDir)
	if err != nil {
		logger.Infof("hybrid search requested but no lexical index present: %v", err)
		return vecResults
	}
	defer lex.Close()

	hits, err := lex.Search(q.Text, q.TopK*2)
	if err != nil {
		logger.Warnf("lexical search failed, falling back to vector-only results: %v", err)
		return vecResults
	}

	return lexical.Merge(vecResults, hits, idx.ChunkByID, q, q.TopK)
}

func parseContentFilter(s string) (chunk.ContentType, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "code":
		return chunk.ContentCode, nil
	case "documentation":
		return chunk.ContentDocumentation, nil
	default:
		return "", fmt.Errorf("invalid --filter %q: must be \"code\" or \"documentation\"", s)
	}
}

func emitResults(results []vectorindex.Result, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return
	}

	for i, r := range results {
		c := r.Chunk
		fmt.Printf("--- result %d (score %.4f) ---\n", i+1, r.Score)
		fmt.Printf("kind: %s\n", c.Kind)
		fmt.Printf("file: %s:%d\n", c.FilePath, c.Lineno)
		if title := c.Title(); title != "" {
			fmt.Printf("document_title: %s\n", c.DocumentTitle())
			fmt.Printf("section: %s\n", title)
		}
		if name := c.ReadableName(); name != "" {
			fmt.Printf("readable_name: %s\n", name)
		}
		if patterns := c.Patterns(); len(patterns) > 0 {
			fmt.Printf("patterns: %s\n", strings.Join(patterns, ", "))
		}
		if rels := c.Relationships(); len(rels) > 0 {
			var parts []string
			for _, rel := range rels {
				parts = append(parts, fmt.Sprintf("%s->%s", rel.Type, rel.Target))
			}
			fmt.Printf("relationships: %s\n", strings.Join(parts, ", "))
		}
		fmt.Println(r.DisplayContent)
		fmt.Println()
	}
}

func init() {
	searchCmd.Flags().StringVar(&searchDataDir, "data-dir", "", "directory the index was built into")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 5, "maximum number of results")
	searchCmd.Flags().StringVar(&searchFilter, "filter", "", "content filter: code|documentation")
	searchCmd.Flags().Float32Var(&searchMinScore, "min-score", 0.0, "minimum similarity score")
	searchCmd.Flags().StringVar(&searchType, "type", "", "chunk kind filter: function|method|class|module")
	searchCmd.Flags().StringVar(&searchParamType, "param-type", "", "filter by parameter type substring")
	searchCmd.Flags().StringVar(&searchParamName, "param-name", "", "filter by parameter name substring")
	searchCmd.Flags().StringVar(&searchReturnType, "return-type", "", "filter by return type substring")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit results as a JSON array")
	searchCmd.Flags().BoolVar(&searchHybrid, "hybrid", false, "blend in a bleve keyword search (requires a lexical index)")
}
