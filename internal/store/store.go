// Package store resolves entity-storage directories and loads the five typed
// entity collections with closest-directory-wins override precedence.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/protokoll/internal/models"
)

// extensions lists the recognized entity document extensions in preference
// order: a .yaml document always wins over a .yml sibling with the same stem,
// on load and on lookup alike.
var extensions = []string{".yaml", ".yml"}

// Store holds the in-memory entity collections. It assumes a single logical
// writer at a time; concurrent mutation of the same id is last-writer-wins.
type Store struct {
	entities map[models.Type]map[string]models.Entity
}

// New returns an empty Store. Collections are owned by the instance; two
// stores never share state.
func New() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear empties all five collections.
func (s *Store) Clear() {
	s.entities = make(map[models.Type]map[string]models.Entity, len(models.Types))
	for _, t := range models.Types {
		s.entities[t] = make(map[string]models.Entity)
	}
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

// Load reads every recognized entity document under each storage directory.
// dirs must be ordered furthest-first: later directories overwrite earlier
// records sharing an id, so the closest directory always wins. Missing
// subdirectories and malformed documents contribute nothing.
func (s *Store) Load(dirs []string) {
	for _, dir := range dirs {
		for _, t := range models.Types {
			s.loadTypeDir(dir, t)
		}
	}
}

func (s *Store) loadTypeDir(dir string, t models.Type) {
	sub := filepath.Join(dir, t.DirName())
	entries, err := os.ReadDir(sub)
	if err != nil {
		return
	}

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[entry.Name()] = true
	}

	for _, entry := range entries {
		if entry.IsDir() || !recognizedExt(entry.Name()) {
			continue
		}
		// A .yml document is shadowed by a .yaml sibling with the same stem,
		// matching the lookup preference in layoutCandidates.
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ".yml") &&
			names[strings.TrimSuffix(name, filepath.Ext(name))+".yaml"] {
			continue
		}
		path := filepath.Join(sub, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable entity document", "path", path, "err", err)
			continue
		}

		ent := models.New(t)
		if err := yaml.Unmarshal(data, ent); err != nil {
			slog.Warn("skipping malformed entity document", "path", path, "err", err)
			continue
		}

		base := ent.Base()
		if base.ID == "" {
			slog.Warn("skipping entity document without id", "path", path)
			continue
		}
		// The subdirectory is authoritative for the type, never the document.
		base.Type = t
		s.entities[t][base.ID] = ent
	}
}

func recognizedExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

// Get returns the entity with the given type and id, if loaded.
func (s *Store) Get(t models.Type, id string) (models.Entity, bool) {
	ent, ok := s.entities[t][id]
	return ent, ok
}

// GetAll returns every loaded entity of type t, ordered by id.
func (s *Store) GetAll(t models.Type) []models.Entity {
	coll := s.entities[t]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, coll[id])
	}
	return out
}

// Search returns every entity whose name contains query, case-insensitively.
// Results are ordered by the fixed type order, then by id.
func (s *Store) Search(query string) []models.Entity {
	needle := strings.ToLower(query)
	var out []models.Entity
	for _, t := range models.Types {
		for _, ent := range s.GetAll(t) {
			if strings.Contains(strings.ToLower(ent.Base().Name), needle) {
				out = append(out, ent)
			}
		}
	}
	return out
}

// FindBySoundsLike returns the first entity (fixed type order, then id order)
// whose sounds_like list contains phonetic, compared case-insensitively after
// trimming. Entities without phonetic variants are skipped.
func (s *Store) FindBySoundsLike(phonetic string) (models.Entity, bool) {
	needle := strings.ToLower(strings.TrimSpace(phonetic))
	if needle == "" {
		return nil, false
	}
	for _, t := range models.Types {
		for _, ent := range s.GetAll(t) {
			for _, variant := range ent.Base().SoundsLike {
				if strings.ToLower(strings.TrimSpace(variant)) == needle {
					return ent, true
				}
			}
		}
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Mutation
// ---------------------------------------------------------------------------

// Save persists ent under <rootDir>/context/<typeDir>/<id>.yaml, creating
// directories as needed, and updates the in-memory collection immediately.
// The type field is implied by the subdirectory and never written. Returns
// the file path written.
func (s *Store) Save(ent models.Entity, rootDir string) (string, error) {
	base := ent.Base()
	if base.ID == "" {
		return "", fmt.Errorf("Save: entity has no id")
	}
	if !base.Type.Valid() {
		return "", fmt.Errorf("Save: entity has invalid type %q", base.Type)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if base.CreatedAt == "" {
		base.CreatedAt = now
	}
	base.UpdatedAt = now

	dir := filepath.Join(rootDir, ConventionalDirName, base.Type.DirName())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("Save: create %s: %w", dir, err)
	}

	data, err := yaml.Marshal(ent)
	if err != nil {
		return "", fmt.Errorf("Save: marshal %s/%s: %w", base.Type, base.ID, err)
	}

	path := filepath.Join(dir, base.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- entity documents are plain reference data
		return "", fmt.Errorf("Save: write %s: %w", path, err)
	}

	// A leftover legacy .yml document for the same id holds a superseded
	// version; remove it so the directory carries one document per id.
	stale := filepath.Join(dir, base.ID+".yml")
	if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not remove superseded entity document", "path", stale, "err", err)
	}

	s.entities[base.Type][base.ID] = ent
	return path, nil
}

// Delete removes the document for type/id under rootDir, trying every
// plausible historical layout (with and without the context/ nesting, both
// extensions). Reports whether any file was removed; the in-memory record is
// dropped only on success.
func (s *Store) Delete(t models.Type, id, rootDir string) bool {
	removed := false
	for _, candidate := range layoutCandidates(rootDir, t, id) {
		if err := os.Remove(candidate); err == nil {
			removed = true
		} else if !os.IsNotExist(err) {
			slog.Warn("could not remove entity document", "path", candidate, "err", err)
		}
	}
	if removed {
		delete(s.entities[t], id)
	}
	return removed
}

// EntityFilePath scans storage directories closest-first (the reverse of load
// order) and returns the first existing document path for type/id, under
// either the current or legacy layout. Returns "" when no file exists.
func (s *Store) EntityFilePath(t models.Type, id string, dirs []string) string {
	for i := len(dirs) - 1; i >= 0; i-- {
		for _, candidate := range layoutCandidates(dirs[i], t, id) {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

// layoutCandidates lists every path a type/id document may live at under dir,
// current layout first.
func layoutCandidates(dir string, t models.Type, id string) []string {
	candidates := make([]string, 0, 2*len(extensions))
	for _, ext := range extensions {
		candidates = append(candidates, filepath.Join(dir, t.DirName(), id+ext))
	}
	for _, ext := range extensions {
		candidates = append(candidates, filepath.Join(dir, ConventionalDirName, t.DirName(), id+ext))
	}
	return candidates
}
