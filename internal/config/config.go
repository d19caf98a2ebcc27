// Package config parses per-directory configuration documents and deep-merges
// them with closest-directory-wins precedence.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/protokoll/internal/discover"
)

// DefaultFileName is the configuration document inside each marker directory.
const DefaultFileName = "config.yaml"

// Doc pairs a discovered directory with its parsed configuration tree.
// Tree is nil when the directory has no readable document.
type Doc struct {
	Dir  discover.Dir
	Tree map[string]any
}

// LoadDocs reads fileName from each discovered directory's marker dir and
// parses it into an untyped tree. A missing or unparsable file contributes a
// nil tree; neither is an error.
func LoadDocs(dirs []discover.Dir, markerName, fileName string) []Doc {
	if fileName == "" {
		fileName = DefaultFileName
	}

	docs := make([]Doc, 0, len(dirs))
	for _, dir := range dirs {
		path := filepath.Join(dir.Path, markerName, fileName)
		docs = append(docs, Doc{Dir: dir, Tree: parseFile(path)})
	}
	return docs
}

func parseFile(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		slog.Warn("skipping unparsable config document", "path", path, "err", err)
		return nil
	}
	return tree
}

// ---------------------------------------------------------------------------
// Deep merge
// ---------------------------------------------------------------------------

// MergeDocs merges all parsed documents furthest-first so that the closest
// directory's document is applied last and wins.
func MergeDocs(docs []Doc) map[string]any {
	ordered := make([]Doc, len(docs))
	copy(ordered, docs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Dir.Level > ordered[j].Dir.Level
	})

	var merged any
	for _, doc := range ordered {
		if doc.Tree == nil {
			continue
		}
		merged = Merge(merged, doc.Tree)
	}

	if m, ok := merged.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Merge deep-merges src over dst and returns the result without mutating
// either input. Maps merge recursively key by key; an array on the src side
// replaces the dst value wholesale; scalars replace. A nil side loses
// outright.
func Merge(dst, src any) any {
	if src == nil {
		return dst
	}
	if dst == nil {
		return src
	}

	dstMap, dstOK := dst.(map[string]any)
	srcMap, srcOK := src.(map[string]any)
	if dstOK && srcOK {
		out := make(map[string]any, len(dstMap)+len(srcMap))
		for k, v := range dstMap {
			out[k] = v
		}
		for k, v := range srcMap {
			out[k] = Merge(out[k], v)
		}
		return out
	}

	return src
}

// ---------------------------------------------------------------------------
// Typed materialization
// ---------------------------------------------------------------------------

// ContextPath returns the explicit entity-storage override from a tree, or ""
// when none is configured.
func ContextPath(tree map[string]any) string {
	p, _ := tree["context_path"].(string)
	return p
}

// SmartAssist holds the smart-assistance settings materialized from the
// merged configuration. Every field has a fixed default.
type SmartAssist struct {
	Enabled              bool
	Model                string
	TranscriptionModel   string
	SuggestEntities      bool
	SuggestRelationships bool
	LearnFromCorrections bool
	Timeout              time.Duration
}

// DefaultSmartAssist returns the settings used when no configuration sets
// any smart_assistance field.
func DefaultSmartAssist() SmartAssist {
	return SmartAssist{
		Enabled:              true,
		Model:                "claude-sonnet-4-5",
		TranscriptionModel:   "whisper-1",
		SuggestEntities:      true,
		SuggestRelationships: false,
		LearnFromCorrections: true,
		Timeout:              30 * time.Second,
	}
}

// SmartAssistFrom materializes settings from a merged tree, applying only the
// keys that are present over the defaults.
func SmartAssistFrom(tree map[string]any) SmartAssist {
	sa := DefaultSmartAssist()

	block, ok := tree["smart_assistance"].(map[string]any)
	if !ok {
		return sa
	}

	if v, ok := block["enabled"].(bool); ok {
		sa.Enabled = v
	}
	if v, ok := block["model"].(string); ok && v != "" {
		sa.Model = v
	}
	if v, ok := block["transcription_model"].(string); ok && v != "" {
		sa.TranscriptionModel = v
	}
	if v, ok := block["suggest_entities"].(bool); ok {
		sa.SuggestEntities = v
	}
	if v, ok := block["suggest_relationships"].(bool); ok {
		sa.SuggestRelationships = v
	}
	if v, ok := block["learn_from_corrections"].(bool); ok {
		sa.LearnFromCorrections = v
	}
	if secs, ok := asInt(block["timeout_seconds"]); ok && secs > 0 {
		sa.Timeout = time.Duration(secs) * time.Second
	}

	return sa
}

// asInt accepts the numeric shapes yaml.v3 can produce for an integer field.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
