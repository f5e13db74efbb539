package preflight

import (
	"context"

	"cubby/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// target names the directory an organize pass would touch; an empty target
// skips that check.
func RunAll(ctx context.Context, cfg *config.Config, target string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if target != "" {
		results = append(results, CheckDirectoryAccess("Target directory", target))
	}
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.History.Enabled {
		results = append(results, CheckHistoryStore(ctx, cfg))
	}

	return results
}

// Passed reports whether every result in the set passed.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
