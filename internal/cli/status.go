package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bivav/code-cognitio/internal/embed"
	"github.com/bivav/code-cognitio/internal/lexical"
	"github.com/bivav/code-cognitio/internal/logging"
	"github.com/bivav/code-cognitio/internal/vectorindex"
)

var (
	statusDataDir string
	statusJSON    bool
)

// statusResponse is the introspection shape: total/code/doc chunk counts,
// the embedder identifier the index was built with, and whether a lexical
// adjunct index is present.
type statusResponse struct {
	DataDir            string `json:"data_dir"`
	IndexPresent       bool   `json:"index_present"`
	EmbedderIdentifier string `json:"embedder_identifier,omitempty"`
	TotalChunks        int    `json:"total_chunks"`
	CodeChunks         int    `json:"code_chunks"`
	DocChunks          int    `json:"doc_chunks"`
	LexicalIndexPresent bool  `json:"lexical_index_present"`
}

// statusCmd reports whether an index exists under the data directory and
// its size.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether an index exists and its size",
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.Default()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitInvalidArg)
		}
		applyDataDir(cfg, statusDataDir, cmd.Flags().Changed("data-dir"))

		resp := statusResponse{DataDir: cfg.DataDir}

		idx, err := vectorindex.Load(cfg.DataDir, "", embed.DefaultDimensions, logger)
		if err == nil {
			resp.IndexPresent = true
			resp.EmbedderIdentifier = idx.EmbedderIdentifier
			resp.TotalChunks = idx.TotalChunks()
			resp.CodeChunks = idx.CodeChunks()
			resp.DocChunks = idx.DocChunks()
		}

		if lex, err := lexical.Load(cfg.DataDir); err == nil {
			resp.LexicalIndexPresent = true
			lex.Close()
		}

		if statusJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(resp)
			return
		}

		if !resp.IndexPresent {
			fmt.Printf("no index found under %s\n", resp.DataDir)
			return
		}
		fmt.Printf("index: %s\n", resp.DataDir)
		fmt.Printf("embedder: %s\n", resp.EmbedderIdentifier)
		fmt.Printf("chunks: %d total (%d code, %d documentation)\n", resp.TotalChunks, resp.CodeChunks, resp.DocChunks)
		fmt.Printf("lexical index: %v\n", resp.LexicalIndexPresent)
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusDataDir, "data-dir", "", "directory the index was built into")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "emit the result as JSON")
}
