// Package lockfile serializes organize passes against the same target
// directory so two cubby invocations cannot move files out from under each
// other. Locks are flock-based and keyed by the absolute target path.
package lockfile
