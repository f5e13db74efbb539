// Package history persists completed organize runs in SQLite so past passes
// can be listed and inspected. Each run row carries the pass summary; the
// per-file rows record where every file went and why any of them failed.
package history
