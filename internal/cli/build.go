package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bivav/code-cognitio/internal/config"
	"github.com/bivav/code-cognitio/internal/embed"
	"github.com/bivav/code-cognitio/internal/logging"
	"github.com/bivav/code-cognitio/internal/pipeline"
)

var (
	buildDataDir      string
	buildEmbedderID   string
	buildGPU          bool
	buildFileTypes    string
	buildExcludeTypes string
)

// buildCmd walks the given roots, then builds and persists the index.
var buildCmd = &cobra.Command{
	Use:   "build <paths...>",
	Short: "Walk one or more paths and build the semantic search index",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.Default()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitInvalidArg)
		}
		applyDataDir(cfg, buildDataDir, cmd.Flags().Changed("data-dir"))
		if cmd.Flags().Changed("embedder-id") {
			cfg.EmbedderIdentifier = buildEmbedderID
		}
		cfg.UseGPU = buildGPU
		applyTypeFilters(cfg, buildFileTypes, buildExcludeTypes)

		p, err := pipeline.New(cfg, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "building pipeline:", err)
			os.Exit(exitBuildIOFailure)
		}

		provider := embed.NewHTTPProvider(cfg.EmbedderEndpoint, embed.DefaultDimensions)
		defer provider.Close()

		bar := newProgressBar("indexing")
		result, err := p.Build(context.Background(), args, provider, 32)
		bar.Finish()
		if err != nil {
			fmt.Fprintln(os.Stderr, "build failed:", err)
			os.Exit(exitBuildIOFailure)
		}

		if err := result.VectorIndex.Save(cfg.DataDir); err != nil {
			fmt.Fprintln(os.Stderr, "saving index:", err)
			os.Exit(exitBuildIOFailure)
		}

		fmt.Printf("indexed %d chunks (%d code, %d documentation) into %s\n",
			result.VectorIndex.TotalChunks(), result.VectorIndex.CodeChunks(), result.VectorIndex.DocChunks(), cfg.DataDir)
		os.Exit(exitSuccess)
	},
}

// applyTypeFilters implements the additive `--file-types`/`--exclude-types`
// flags by widening cfg.ExcludedExtensions: `--exclude-types` adds its
// extensions directly; `--file-types` (when not "all") excludes every known
// extension not named.
func applyTypeFilters(cfg *config.Config, fileTypes, excludeTypes string) {
	excluded := make(map[string]struct{})
	for _, e := range cfg.ExcludedExtensions {
		excluded[e] = struct{}{}
	}

	for _, t := range splitCSV(excludeTypes) {
		excluded[normalizeExt(t)] = struct{}{}
	}

	if fileTypes != "" && fileTypes != "all" {
		allowed := make(map[string]struct{})
		for _, t := range splitCSV(fileTypes) {
			allowed[normalizeExt(t)] = struct{}{}
		}
		code, docs := pipeline.KnownExtensions()
		for _, ext := range append(code, docs...) {
			if _, ok := allowed[ext]; !ok {
				excluded[ext] = struct{}{}
			}
		}
	}

	cfg.ExcludedExtensions = cfg.ExcludedExtensions[:0]
	for ext := range excluded {
		cfg.ExcludedExtensions = append(cfg.ExcludedExtensions, ext)
	}
}

func normalizeExt(t string) string {
	if len(t) > 0 && t[0] != '.' {
		return "." + t
	}
	return t
}

func init() {
	buildCmd.Flags().StringVar(&buildDataDir, "data-dir", "", "directory to persist the index under")
	buildCmd.Flags().StringVar(&buildEmbedderID, "embedder-id", "", "embedder identifier recorded in the index metadata")
	buildCmd.Flags().BoolVar(&buildGPU, "gpu", false, "request GPU acceleration from the embedder")
	buildCmd.Flags().StringVar(&buildFileTypes, "file-types", "all", "comma-separated extensions to index, or \"all\"")
	buildCmd.Flags().StringVar(&buildExcludeTypes, "exclude-types", "", "comma-separated extensions to skip")
}
