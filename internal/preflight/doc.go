// Package preflight provides readiness checks for the directories and state
// that cubby depends on.
//
// The CLI "cubby check" command runs RunAll and renders the results so a user
// can see why an organize pass would fail before any file is touched. Checks
// gated by config toggles are skipped when the feature is disabled.
package preflight
