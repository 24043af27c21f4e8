package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader loads configuration from file, environment, and defaults; env wins
// over file, file wins over defaults.
type Loader interface {
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader rooted at rootDir.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load reads .cognitio/config.yml (if present), overlays COGNITIO_* env vars,
// and falls back to Default() for anything unset.
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".cognitio")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("COGNITIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range []string{
		"data_dir", "embedder_identifier", "embedder_endpoint", "use_gpu",
		"use_rich_normalization", "large_file_threshold_bytes",
		"section_chunk_max_chars", "over_fetch_multiplier",
		"enable_lexical_index", "worker_count",
	} {
		_ = v.BindEnv(key)
	}
	// DATA_DIR (no prefix) overrides --data-dir.
	_ = v.BindEnv("data_dir", "DATA_DIR")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("embedder_identifier", d.EmbedderIdentifier)
	v.SetDefault("embedder_endpoint", d.EmbedderEndpoint)
	v.SetDefault("use_gpu", d.UseGPU)
	v.SetDefault("use_rich_normalization", d.UseRichNormalization)
	v.SetDefault("large_file_threshold_bytes", d.LargeFileThresholdBytes)
	v.SetDefault("section_chunk_max_chars", d.SectionChunkMaxChars)
	v.SetDefault("ignore_dirs", d.IgnoreDirs)
	v.SetDefault("ignore_globs", d.IgnoreGlobs)
	v.SetDefault("excluded_extensions", d.ExcludedExtensions)
	v.SetDefault("over_fetch_multiplier", d.OverFetchMultiplier)
	v.SetDefault("enable_lexical_index", d.EnableLexicalIndex)
	v.SetDefault("worker_count", d.WorkerCount)
}

// LoadConfig loads configuration rooted at the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration rooted at rootDir.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
