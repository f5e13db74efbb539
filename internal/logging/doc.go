// Package logging assembles the structured slog loggers used across cubby.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so command and organizer code emit log
// lines with the same shape. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// logs with the same routing and formatting.
package logging
