package pipeline

import (
	"github.com/bivav/code-cognitio/internal/config"
	"github.com/bivav/code-cognitio/internal/dispatch"
	"github.com/bivav/code-cognitio/internal/logging"
	"github.com/bivav/code-cognitio/internal/normalize"
	"github.com/bivav/code-cognitio/internal/walker"
)

// Pipeline owns the wiring between the walker, dispatcher, normalizer, and
// section chunker that every build operation runs through.
type Pipeline struct {
	Config     *config.Config
	Logger     *logging.Logger
	Walker     *walker.Walker
	Registry   *dispatch.Table
	Normalizer *normalize.Normalizer
	Chunker    *normalize.SectionChunker
}

// New constructs a Pipeline from cfg, registering every extractor and
// configuring the normalizer/chunker from cfg's tunables.
func New(cfg *config.Config, logger *logging.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = logging.Default()
	}

	w, err := walker.New(cfg.IgnoreDirs, cfg.IgnoreGlobs, cfg.ExcludedExtensions)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Config:     cfg,
		Logger:     logger,
		Walker:     w,
		Registry:   NewRegistry(cfg),
		Normalizer: normalize.New(cfg.UseRichNormalization),
		Chunker:    normalize.NewSectionChunker(cfg.SectionChunkMaxChars),
	}, nil
}
