package organize

import (
	"path/filepath"

	"cubby/internal/classify"
)

// Plan pairs a scanned file with its destination under the organize root.
// The file keeps its original name; only the directory changes.
type Plan struct {
	Entry    FileEntry
	RelDir   string // destination directory relative to the root, slash-separated
	DestDir  string
	DestPath string
}

func planFor(root string, entry FileEntry, mode classify.Mode) Plan {
	relDir := classify.RelativeDir(mode, entry.Name, entry.ModTime)
	destDir := filepath.Join(root, filepath.FromSlash(relDir))
	return Plan{
		Entry:    entry,
		RelDir:   relDir,
		DestDir:  destDir,
		DestPath: filepath.Join(destDir, entry.Name),
	}
}
