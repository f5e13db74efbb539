// Package organize plans and performs the moves that tidy a directory.
//
// A pass snapshots the regular files sitting directly in the target root,
// classifies each one into a relative destination via internal/classify, and
// then applies the plans in order: dry runs touch nothing, occupied
// destinations are skipped, and everything else is moved with a
// collision-safe rename that falls back to copy-and-remove across
// filesystems. Every file yields exactly one Result; filesystem trouble with
// one file never aborts the rest of the pass.
//
// Fatal errors are limited to the target itself being missing, not a
// directory, or unlistable. Those abort the run before any file is touched.
package organize
