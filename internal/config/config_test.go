package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, int64(1<<20), cfg.LargeFileThresholdBytes)
	assert.Equal(t, 500, cfg.SectionChunkMaxChars)
	assert.Equal(t, 2, cfg.OverFetchMultiplier)
	assert.Contains(t, cfg.IgnoreDirs, "node_modules")
	assert.Contains(t, cfg.IgnoreGlobs, "*.pyc")
}

func TestValidate_RejectsEmptyDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = ""
	assert.ErrorIs(t, Validate(cfg), ErrEmptyDataDir)
}

func TestValidate_RejectsNonPositiveThreshold(t *testing.T) {
	cfg := Default()
	cfg.LargeFileThresholdBytes = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidThreshold)
}

func TestValidate_AccumulatesMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.DataDir = ""
	cfg.EmbedderIdentifier = ""
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty data directory")
	assert.Contains(t, err.Error(), "empty embedder identifier")
}
