// Package config loads, normalizes, and validates cubby configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the XDG_DATA_HOME convention for
// the state directory. The Config type centralizes every knob the CLI needs:
// the default organize mode, ignore patterns, journal retention, and log
// routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
