package organize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"cubby/internal/classify"
)

// FileEntry describes one regular file found directly in the organize root.
type FileEntry struct {
	Name    string
	Path    string
	Ext     string
	Size    int64
	ModTime time.Time
}

// Scan snapshots the regular files sitting directly in root, in name order.
// Subdirectories, symlinks, and other non-regular entries are excluded, as
// are names matching an ignore pattern. Files created after the snapshot are
// not picked up by the pass that follows.
func Scan(root string, ignore []string) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat target: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}

	entries := make([]FileEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if matchesIgnore(name, ignore) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Vanished between ReadDir and Info; not part of the snapshot.
				continue
			}
			return nil, fmt.Errorf("inspect %s: %w", name, err)
		}
		entries = append(entries, FileEntry{
			Name:    name,
			Path:    filepath.Join(root, name),
			Ext:     classify.ExtOf(name),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}
	return entries, nil
}

func matchesIgnore(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
