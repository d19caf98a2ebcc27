// Package discover walks the filesystem upward from a starting directory and
// finds every ancestor that contains a protokoll marker directory.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultMarkerName is the directory whose presence marks a context scope.
	DefaultMarkerName = ".protokoll"

	// DefaultMaxDepth bounds how many directories the upward walk visits.
	DefaultMaxDepth = 10
)

// Dir is one discovered context directory. Level 0 is the starting directory,
// increasing toward the filesystem root.
type Dir struct {
	Path  string
	Level int
}

// Walk resolves startDir to an absolute path and walks toward the filesystem
// root, recording every directory that contains markerName as a subdirectory.
// The walk stops at the root, at maxDepth visited directories, or when a
// canonical path repeats (symlink cycle guard). The result is ordered closest
// first; an empty result means no context exists and is not an error.
func Walk(startDir, markerName string, maxDepth int) ([]Dir, error) {
	if markerName == "" {
		markerName = DefaultMarkerName
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	current, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("Walk: resolve %q: %w", startDir, err)
	}

	visited := make(map[string]bool, maxDepth)
	dirs := make([]Dir, 0, 2)

	for level := 0; level < maxDepth; level++ {
		canon := canonicalize(current)
		if visited[canon] {
			break
		}
		visited[canon] = true

		if info, err := os.Stat(filepath.Join(current, markerName)); err == nil && info.IsDir() {
			dirs = append(dirs, Dir{Path: current, Level: level})
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return dirs, nil
}

// canonicalize resolves symlinks so the visited set keys on real paths. When
// resolution fails (dangling link, permission), the absolute path stands in.
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
