// Package classify maps file names onto destination folders.
//
// It owns the fixed extension-to-category table, the calendar bucketing used
// by date mode, and the Mode enum the CLI parses user input into. Every name
// classifies to exactly one relative directory for a given mode; unknown and
// missing extensions land in the catch-all "other" category rather than
// failing. The package is pure: it never touches the filesystem, so callers
// can plan moves before deciding whether to perform them.
package classify
