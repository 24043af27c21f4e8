package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bivav/code-cognitio/internal/config"
)

func TestApplyDataDirFlagOverridesWhenChanged(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = ".cognitio"

	applyDataDir(cfg, "/flag/dir", true)
	assert.Equal(t, "/flag/dir", cfg.DataDir)
}

func TestApplyDataDirIgnoresUnchangedFlag(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = ".cognitio"

	applyDataDir(cfg, "/flag/dir", false)
	assert.Equal(t, ".cognitio", cfg.DataDir)
}

func TestApplyDataDirEnvVarWinsOverFlag(t *testing.T) {
	t.Setenv("DATA_DIR", "/env/dir")
	cfg := config.Default()
	cfg.DataDir = "/env/dir" // the config loader has already applied DATA_DIR by this point

	applyDataDir(cfg, "/flag/dir", true)
	assert.Equal(t, "/env/dir", cfg.DataDir)
}

func TestSplitCSVTrimsAndDropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitCSV(" a, b ,,c"))
	assert.Nil(t, splitCSV(""))
}
