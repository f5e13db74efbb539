package testsupport

import (
	"path/filepath"
	"testing"

	"cubby/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithKeepRuns overrides how many runs the history store retains.
func WithKeepRuns(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.KeepRuns = n
	}
}

// WithDefaultMode overrides the organize mode used when no flag is given.
func WithDefaultMode(mode string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.DefaultMode = mode
	}
}
