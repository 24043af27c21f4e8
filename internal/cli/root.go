// Package cli wires the cobra command tree: `build`, `search`,
// `list-file-types`, plus the `status`, `version`, and `mcp` verbs.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "code-cognitio",
	Short: "Semantic search for source-code repositories",
	Long: `Code Cognitio extracts semantically meaningful units from a
repository (functions, methods, classes, documentation sections,
container-build directives), embeds them into a vector index, and serves
nearest-neighbor search filtered by structural predicates.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listFileTypesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)
}
