package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bivav/code-cognitio/internal/pipeline"
)

var listFileTypesJSON bool

// fileTypes is the response shape: `{code: [...], documentation: [...]}`.
type fileTypes struct {
	Code          []string `json:"code"`
	Documentation []string `json:"documentation"`
}

// listFileTypesCmd enumerates the extensions the dispatcher recognizes.
var listFileTypesCmd = &cobra.Command{
	Use:   "list-file-types",
	Short: "Enumerate supported code and documentation extensions",
	Run: func(cmd *cobra.Command, args []string) {
		code, docs := pipeline.KnownExtensions()
		result := fileTypes{Code: code, Documentation: docs}

		if listFileTypesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(result)
			return
		}

		fmt.Println("code:")
		for _, ext := range result.Code {
			fmt.Printf("  %s\n", ext)
		}
		fmt.Println("documentation:")
		for _, ext := range result.Documentation {
			fmt.Printf("  %s\n", ext)
		}
	},
}

func init() {
	listFileTypesCmd.Flags().BoolVar(&listFileTypesJSON, "json", false, "emit the result as JSON")
}
