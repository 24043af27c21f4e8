package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bivav/code-cognitio/internal/config"
)

func TestApplyTypeFiltersExcludeOnlyAddsExtensions(t *testing.T) {
	cfg := config.Default()
	cfg.ExcludedExtensions = []string{".log"}

	applyTypeFilters(cfg, "all", "rb,rs")

	assert.Contains(t, cfg.ExcludedExtensions, ".log")
	assert.Contains(t, cfg.ExcludedExtensions, ".rb")
	assert.Contains(t, cfg.ExcludedExtensions, ".rs")
}

func TestApplyTypeFiltersRestrictsToAllowedExtensions(t *testing.T) {
	cfg := config.Default()
	cfg.ExcludedExtensions = nil

	applyTypeFilters(cfg, "py", "")

	assert.Contains(t, cfg.ExcludedExtensions, ".java")
	assert.Contains(t, cfg.ExcludedExtensions, ".md")
	assert.NotContains(t, cfg.ExcludedExtensions, ".py")
}

func TestNormalizeExtPrependsDot(t *testing.T) {
	assert.Equal(t, ".rb", normalizeExt("rb"))
	assert.Equal(t, ".rb", normalizeExt(".rb"))
}
