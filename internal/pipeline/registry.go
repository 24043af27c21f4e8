// Package pipeline wires the walker, dispatcher, extractors, normalizer,
// chunker, and vector/lexical indices into the build operation: an
// embarrassingly-parallel per-file worker pool whose out-of-order results
// are reassembled into walk order before anything downstream sees them.
package pipeline

import (
	"github.com/bivav/code-cognitio/internal/config"
	"github.com/bivav/code-cognitio/internal/dispatch"
	"github.com/bivav/code-cognitio/internal/extract/c"
	"github.com/bivav/code-cognitio/internal/extract/dockerfile"
	"github.com/bivav/code-cognitio/internal/extract/generic"
	"github.com/bivav/code-cognitio/internal/extract/java"
	"github.com/bivav/code-cognitio/internal/extract/jsts"
	"github.com/bivav/code-cognitio/internal/extract/markdown"
	"github.com/bivav/code-cognitio/internal/extract/php"
	"github.com/bivav/code-cognitio/internal/extract/python"
	"github.com/bivav/code-cognitio/internal/extract/rst"
	"github.com/bivav/code-cognitio/internal/extract/ruby"
	"github.com/bivav/code-cognitio/internal/extract/rust"
)

// NewRegistry builds the dispatch table: basename rules first, then
// extension (with alias resolution), then documentation extension, then the
// generic fallback.
func NewRegistry(cfg *config.Config) *dispatch.Table {
	t := dispatch.New()

	pythonExtractor := python.New(cfg.LargeFileThresholdBytes)
	t.RegisterExtension(".py", pythonExtractor)
	t.RegisterExtensionAlias(".pyw", ".py")
	t.RegisterExtensionAlias(".pyi", ".py")

	cExtractor := c.New()
	for _, ext := range []string{".c", ".h", ".cpp", ".cc", ".cxx", ".hpp", ".hh"} {
		t.RegisterExtension(ext, cExtractor)
	}

	javaExtractor := java.New()
	t.RegisterExtension(".java", javaExtractor)

	phpExtractor := php.New()
	t.RegisterExtension(".php", phpExtractor)

	rubyExtractor := ruby.New()
	t.RegisterExtension(".rb", rubyExtractor)

	rustExtractor := rust.New()
	t.RegisterExtension(".rs", rustExtractor)

	jstsExtractor := jsts.New()
	for _, ext := range []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"} {
		t.RegisterExtension(ext, jstsExtractor)
	}

	markdownExtractor := markdown.New()
	t.RegisterExtension(".md", markdownExtractor)
	t.RegisterDocExtension(".md")
	t.RegisterExtensionAlias(".mdown", ".md")
	t.RegisterExtensionAlias(".mkd", ".md")
	t.RegisterExtensionAlias(".mdwn", ".md")
	t.RegisterExtensionAlias(".mdtxt", ".md")
	t.RegisterExtensionAlias(".mdtext", ".md")
	t.RegisterExtensionAlias(".rmd", ".md")
	t.RegisterExtensionAlias(".txt", ".md")
	t.RegisterExtension(".markdown", markdownExtractor)
	t.RegisterDocExtension(".markdown")

	rstExtractor := rst.New()
	t.RegisterExtension(".rst", rstExtractor)
	t.RegisterDocExtension(".rst")
	t.RegisterExtension(".rest", rstExtractor)
	t.RegisterDocExtension(".rest")

	dockerExtractor := dockerfile.New()
	t.RegisterBasename("Dockerfile", dockerExtractor)
	t.RegisterBasename("dockerfile", dockerExtractor)
	t.RegisterBasename("docker-compose.yml", dockerExtractor)
	t.RegisterBasename("docker-compose.yaml", dockerExtractor)

	t.SetGenericExtractor(generic.New())

	return t
}

// KnownExtensions enumerates every extension the dispatch rules recognize as
// code or documentation, for `list-file-types` and the `build`
// `--file-types`/`--exclude-types` flags. Aliases are reported under their
// canonical extension (e.g. `.pyw` is represented by `.py`).
func KnownExtensions() (code []string, documentation []string) {
	code = []string{
		".py", ".c", ".h", ".cpp", ".cc", ".cxx", ".hpp", ".hh",
		".java", ".php", ".rb", ".rs",
		".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	}
	documentation = []string{".md", ".markdown", ".rst", ".rest"}
	return code, documentation
}
