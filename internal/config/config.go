// Package config defines the single configuration record for Code Cognitio,
// loaded with viper from file, environment, and defaults.
package config

// Config is the single configuration record. Every tunable across the
// pipeline is a field here — there is no per-subsystem config struct split.
type Config struct {
	DataDir                 string   `yaml:"data_dir" mapstructure:"data_dir"`
	EmbedderIdentifier      string   `yaml:"embedder_identifier" mapstructure:"embedder_identifier"`
	EmbedderEndpoint        string   `yaml:"embedder_endpoint" mapstructure:"embedder_endpoint"`
	UseGPU                  bool     `yaml:"use_gpu" mapstructure:"use_gpu"`
	UseRichNormalization    bool     `yaml:"use_rich_normalization" mapstructure:"use_rich_normalization"`
	LargeFileThresholdBytes int64    `yaml:"large_file_threshold_bytes" mapstructure:"large_file_threshold_bytes"`
	SectionChunkMaxChars    int      `yaml:"section_chunk_max_chars" mapstructure:"section_chunk_max_chars"`
	IgnoreDirs              []string `yaml:"ignore_dirs" mapstructure:"ignore_dirs"`
	IgnoreGlobs             []string `yaml:"ignore_globs" mapstructure:"ignore_globs"`
	ExcludedExtensions      []string `yaml:"excluded_extensions" mapstructure:"excluded_extensions"`
	OverFetchMultiplier     int      `yaml:"over_fetch_multiplier" mapstructure:"over_fetch_multiplier"`
	EnableLexicalIndex      bool     `yaml:"enable_lexical_index" mapstructure:"enable_lexical_index"`
	WorkerCount             int      `yaml:"worker_count" mapstructure:"worker_count"`
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		DataDir:                 ".cognitio",
		EmbedderIdentifier:      "local-default",
		EmbedderEndpoint:        "http://localhost:8121/embed",
		UseGPU:                  false,
		UseRichNormalization:    true,
		LargeFileThresholdBytes: 1 << 20,
		SectionChunkMaxChars:    500,
		IgnoreDirs: []string{
			".git", "__pycache__", "node_modules", "build", "dist", "venv",
			".venv", ".pytest_cache", ".mypy_cache", ".coverage", "htmlcov",
		},
		IgnoreGlobs: []string{
			".git", ".DS_Store", "*.pyc", "*.pyo", "*.pyd", "*.so", "*.dylib",
			"*.dll", "*.class", "*.log",
		},
		ExcludedExtensions:   []string{".pyc", ".pyo", ".pyd", ".so", ".dylib", ".dll", ".class", ".log"},
		OverFetchMultiplier: 2,
		EnableLexicalIndex:  false,
		WorkerCount:         0, // 0 means runtime.NumCPU()
	}
}
