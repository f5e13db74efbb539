package classify

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category names a destination folder used by type mode.
type Category string

const (
	CategoryImages        Category = "images"
	CategoryDocuments     Category = "documents"
	CategoryVideos        Category = "videos"
	CategoryAudio         Category = "audio"
	CategoryArchives      Category = "archives"
	CategoryCode          Category = "code"
	CategorySpreadsheets  Category = "spreadsheets"
	CategoryPresentations Category = "presentations"
	CategoryOther         Category = "other"
)

var allCategories = []Category{
	CategoryImages,
	CategoryDocuments,
	CategoryVideos,
	CategoryAudio,
	CategoryArchives,
	CategoryCode,
	CategorySpreadsheets,
	CategoryPresentations,
	CategoryOther,
}

// categoryExtensions is the fixed classification table. CategoryOther has no
// entry; it absorbs everything the table does not claim.
var categoryExtensions = map[Category][]string{
	CategoryImages:        {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".svg"},
	CategoryDocuments:     {".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt"},
	CategoryVideos:        {".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm"},
	CategoryAudio:         {".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"},
	CategoryArchives:      {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"},
	CategoryCode:          {".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".h"},
	CategorySpreadsheets:  {".xls", ".xlsx", ".csv", ".ods"},
	CategoryPresentations: {".ppt", ".pptx", ".odp"},
}

var extensionCategory = func() map[string]Category {
	lookup := make(map[string]Category)
	for _, category := range allCategories {
		for _, ext := range categoryExtensions[category] {
			lookup[ext] = category
		}
	}
	return lookup
}()

// AllCategories returns the ordered list of known categories, catch-all last.
func AllCategories() []Category {
	cp := make([]Category, len(allCategories))
	copy(cp, allCategories)
	return cp
}

// ExtensionsFor returns the extensions claimed by a category in table order.
// The catch-all category returns nil.
func ExtensionsFor(category Category) []string {
	exts, ok := categoryExtensions[category]
	if !ok {
		return nil
	}
	cp := make([]string, len(exts))
	copy(cp, exts)
	return cp
}

// ExtOf extracts the lowercased final extension of a file name, including the
// leading dot. Names without a dot, dotfiles such as ".bashrc", and names
// ending in a bare dot all report no extension.
func ExtOf(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == "" || ext == "." || ext == base {
		return ""
	}
	return strings.ToLower(ext)
}

// CategoryForExt maps an extension onto its category. Unknown and empty
// extensions map to CategoryOther, so every input classifies somewhere.
func CategoryForExt(ext string) Category {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if category, ok := extensionCategory[normalized]; ok {
		return category
	}
	return CategoryOther
}

// CategoryForName classifies a file name by its extension.
func CategoryForName(name string) Category {
	return CategoryForExt(ExtOf(name))
}

// DisplayName renders a category for table output.
func DisplayName(category Category) string {
	return cases.Title(language.Und).String(string(category))
}
