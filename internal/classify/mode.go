package classify

import (
	"strings"
	"time"
)

// Mode selects how files are bucketed into destination folders.
type Mode string

const (
	// ModeType groups files by extension category.
	ModeType Mode = "type"
	// ModeDate groups files by modification year and month.
	ModeDate Mode = "date"
)

var allModes = []Mode{ModeType, ModeDate}

var modeSet = func() map[Mode]struct{} {
	set := make(map[Mode]struct{}, len(allModes))
	for _, mode := range allModes {
		set[mode] = struct{}{}
	}
	return set
}()

// AllModes returns the ordered list of known modes.
func AllModes() []Mode {
	cp := make([]Mode, len(allModes))
	copy(cp, allModes)
	return cp
}

// ParseMode converts a string into a known Mode.
func ParseMode(value string) (Mode, bool) {
	normalized := Mode(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := modeSet[normalized]; ok {
		return normalized, true
	}
	return "", false
}

// DateDir formats a modification time as the YYYY/MM folder pair used by date
// mode. The local calendar date of the timestamp decides the bucket.
func DateDir(modTime time.Time) string {
	return modTime.Format("2006/01")
}

// RelativeDir resolves the destination directory, relative to the organized
// root, for a file name under the given mode. Unrecognized modes fall back to
// type behavior; callers gate user input through ParseMode.
func RelativeDir(mode Mode, name string, modTime time.Time) string {
	switch mode {
	case ModeDate:
		return DateDir(modTime)
	default:
		return string(CategoryForName(name))
	}
}
