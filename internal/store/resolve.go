package store

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/go-ports/protokoll/internal/config"
)

// ConventionalDirName is the sibling directory next to the marker directory
// that conventionally holds entity records.
const ConventionalDirName = "context"

// ResolveStorageDirs determines, per discovered directory, which directory
// actually holds that level's entity records. Priority per level: an explicit
// context_path from that level's own document (relative paths resolve against
// the repo root, the parent of the marker directory), then the conventional
// <repoRoot>/context sibling, then the legacy <markerDir>/context nesting.
// Levels where none exists contribute nothing. The result is ordered
// furthest-first, matching the precedence order the store loads in.
func ResolveStorageDirs(docs []config.Doc, markerName string) []string {
	ordered := make([]config.Doc, len(docs))
	copy(ordered, docs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Dir.Level > ordered[j].Dir.Level
	})

	dirs := make([]string, 0, len(ordered))
	for _, doc := range ordered {
		if dir, ok := storageDirFor(doc, markerName); ok {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func storageDirFor(doc config.Doc, markerName string) (string, bool) {
	if override := config.ContextPath(doc.Tree); override != "" {
		if !filepath.IsAbs(override) {
			override = filepath.Join(doc.Dir.Path, override)
		}
		if isDir(override) {
			return override, true
		}
	}

	conventional := filepath.Join(doc.Dir.Path, ConventionalDirName)
	if isDir(conventional) {
		return conventional, true
	}

	legacy := filepath.Join(doc.Dir.Path, markerName, ConventionalDirName)
	if isDir(legacy) {
		return legacy, true
	}

	return "", false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
