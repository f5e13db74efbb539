package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultMode      = "type"
	defaultKeepRuns  = 50
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Organize: Organize{
			DefaultMode: defaultMode,
		},
		History: History{
			Enabled:  true,
			KeepRuns: defaultKeepRuns,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "cubby")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/cubby"
	}
	return filepath.Join(home, ".local", "share", "cubby")
}
