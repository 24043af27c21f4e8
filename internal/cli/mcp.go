package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bivav/code-cognitio/internal/embed"
	"github.com/bivav/code-cognitio/internal/mcp"
)

var mcpDataDir string

// mcpCmd serves the search_code tool over stdio for MCP-speaking clients.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the index over the Model Context Protocol (stdio)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitInvalidArg)
		}
		applyDataDir(cfg, mcpDataDir, cmd.Flags().Changed("data-dir"))

		provider := embed.NewHTTPProvider(cfg.EmbedderEndpoint, embed.DefaultDimensions)

		srv, err := mcp.New(cfg.DataDir, provider, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "starting MCP server:", err)
			os.Exit(exitBuildIOFailure)
		}
		defer srv.Close()

		if err := srv.Serve(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitBuildIOFailure)
		}
		os.Exit(exitSuccess)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpDataDir, "data-dir", "", "directory the index was built into")
}
