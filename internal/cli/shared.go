package cli

import (
	"os"
	"strings"

	"github.com/bivav/code-cognitio/internal/config"
)

// Exit codes: 0 success, 1 no index found on search, 2 build I/O failure,
// 3 invalid argument.
const (
	exitSuccess        = 0
	exitIndexMissing   = 1
	exitBuildIOFailure = 2
	exitInvalidArg     = 3
)

// loadConfig loads configuration rooted at the current working directory.
func loadConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadConfigFromDir(wd)
}

// applyDataDir overrides cfg.DataDir with flagValue when the --data-dir flag
// was explicitly set, unless DATA_DIR is present in the environment —
// DATA_DIR beats the flag, and the loader has already applied it to cfg by
// the time this runs.
func applyDataDir(cfg *config.Config, flagValue string, flagChanged bool) {
	if os.Getenv("DATA_DIR") != "" {
		return
	}
	if flagChanged && flagValue != "" {
		cfg.DataDir = flagValue
	}
}

// splitCSV splits a comma-separated flag value into trimmed, non-empty
// parts.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
