package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyDataDir       = errors.New("empty data directory")
	ErrEmptyEmbedderID    = errors.New("empty embedder identifier")
	ErrInvalidThreshold   = errors.New("invalid large file threshold")
	ErrInvalidChunkMax    = errors.New("invalid section chunk max chars")
	ErrInvalidOverFetch   = errors.New("invalid over-fetch multiplier")
)

// Validate checks that the configuration is usable, accumulating every
// problem before reporting.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.DataDir) == "" {
		errs = append(errs, ErrEmptyDataDir)
	}
	if strings.TrimSpace(cfg.EmbedderIdentifier) == "" {
		errs = append(errs, ErrEmptyEmbedderID)
	}
	if cfg.LargeFileThresholdBytes <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidThreshold, cfg.LargeFileThresholdBytes))
	}
	if cfg.SectionChunkMaxChars <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidChunkMax, cfg.SectionChunkMaxChars))
	}
	if cfg.OverFetchMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidOverFetch, cfg.OverFetchMultiplier))
	}

	return joinErrors(errs)
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
