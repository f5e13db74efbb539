package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"cubby/internal/classify"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if _, ok := classify.ParseMode(c.Organize.DefaultMode); !ok {
		modes := make([]string, 0, len(classify.AllModes()))
		for _, mode := range classify.AllModes() {
			modes = append(modes, string(mode))
		}
		return fmt.Errorf("organize.default_mode must be one of: %s", strings.Join(modes, ", "))
	}
	for _, pattern := range c.Organize.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("organize.ignore: invalid pattern %q", pattern)
		}
	}
	return nil
}
