// Package service implements the context facade that wires together directory
// discovery, configuration merging, entity-storage resolution, and the entity
// store.
package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-ports/protokoll/internal/config"
	"github.com/go-ports/protokoll/internal/discover"
	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/store"
)

// ErrNoContext is returned by SaveEntity when no marker directory has been
// discovered: there is no valid directory to write into.
var ErrNoContext = errors.New("no context directory discovered")

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	// StartDir is where discovery begins. Defaults to the working directory.
	StartDir string
	// MarkerName defaults to discover.DefaultMarkerName.
	MarkerName string
	// ConfigName defaults to config.DefaultFileName.
	ConfigName string
	// MaxDepth defaults to discover.DefaultMaxDepth.
	MaxDepth int
}

// Service is the context facade. All consumers (CLI, MCP server, feedback
// loop) interact exclusively through it. It assumes a single logical writer
// at a time; no locking is provided for concurrent mutation.
type Service struct {
	opts Options

	dirs        []discover.Dir
	docs        []config.Doc
	merged      map[string]any
	storageDirs []string
	entities    *store.Store
}

// New applies option defaults, runs a full discovery+merge+load pass, and
// returns a ready Service.
func New(opts Options) (*Service, error) {
	if opts.StartDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("service.New: working directory: %w", err)
		}
		opts.StartDir = cwd
	}
	if opts.MarkerName == "" {
		opts.MarkerName = discover.DefaultMarkerName
	}
	if opts.ConfigName == "" {
		opts.ConfigName = config.DefaultFileName
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = discover.DefaultMaxDepth
	}

	s := &Service{opts: opts, entities: store.New()}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load re-runs discovery and configuration merging from scratch, then reloads
// the entity store. Use it when directory layout or configuration may have
// changed.
func (s *Service) Load() error {
	dirs, err := discover.Walk(s.opts.StartDir, s.opts.MarkerName, s.opts.MaxDepth)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}

	s.dirs = dirs
	s.docs = config.LoadDocs(dirs, s.opts.MarkerName, s.opts.ConfigName)
	s.merged = config.MergeDocs(s.docs)
	s.storageDirs = store.ResolveStorageDirs(s.docs, s.opts.MarkerName)

	s.Reload()
	return nil
}

// Reload reloads the entity store from the last-known storage directories
// without re-running discovery. Cheaper than Load when only entity files
// changed.
func (s *Service) Reload() {
	s.entities.Clear()
	s.entities.Load(s.storageDirs)
}

// ---------------------------------------------------------------------------
// Read accessors
// ---------------------------------------------------------------------------

// Dirs returns the discovered context directories, closest first.
func (s *Service) Dirs() []discover.Dir { return s.dirs }

// Config returns the merged configuration tree.
func (s *Service) Config() map[string]any { return s.merged }

// StorageDirs returns the resolved entity-storage directories, furthest
// first.
func (s *Service) StorageDirs() []string { return s.storageDirs }

// SmartAssist materializes the smart-assistance settings from the merged
// configuration.
func (s *Service) SmartAssist() config.SmartAssist {
	return config.SmartAssistFrom(s.merged)
}

// HasContext reports whether at least one marker directory was discovered.
func (s *Service) HasContext() bool { return len(s.dirs) > 0 }

// ---------------------------------------------------------------------------
// Entity lookup
// ---------------------------------------------------------------------------

// Entity returns the loaded entity with the given type and id.
func (s *Service) Entity(t models.Type, id string) (models.Entity, bool) {
	return s.entities.Get(t, id)
}

// Entities returns every loaded entity of type t, ordered by id.
func (s *Service) Entities(t models.Type) []models.Entity {
	return s.entities.GetAll(t)
}

// Search returns entities whose name contains query, case-insensitively.
func (s *Service) Search(query string) []models.Entity {
	return s.entities.Search(query)
}

// FindBySoundsLike returns the first entity matching a phonetic variant.
func (s *Service) FindBySoundsLike(phonetic string) (models.Entity, bool) {
	return s.entities.FindBySoundsLike(phonetic)
}

// Person returns the loaded person with the given id.
func (s *Service) Person(id string) (*models.Person, bool) {
	ent, ok := s.entities.Get(models.TypePerson, id)
	if !ok {
		return nil, false
	}
	p, ok := ent.(*models.Person)
	return p, ok
}

// People returns every loaded person, ordered by id.
func (s *Service) People() []*models.Person {
	return typed[*models.Person](s, models.TypePerson)
}

// Project returns the loaded project with the given id.
func (s *Service) Project(id string) (*models.Project, bool) {
	ent, ok := s.entities.Get(models.TypeProject, id)
	if !ok {
		return nil, false
	}
	p, ok := ent.(*models.Project)
	return p, ok
}

// Projects returns every loaded project, ordered by id.
func (s *Service) Projects() []*models.Project {
	return typed[*models.Project](s, models.TypeProject)
}

// Companies returns every loaded company, ordered by id.
func (s *Service) Companies() []*models.Company {
	return typed[*models.Company](s, models.TypeCompany)
}

// Terms returns every loaded term, ordered by id.
func (s *Service) Terms() []*models.Term {
	return typed[*models.Term](s, models.TypeTerm)
}

// IgnoredTerms returns every loaded ignore-list entry, ordered by id.
func (s *Service) IgnoredTerms() []*models.IgnoredTerm {
	return typed[*models.IgnoredTerm](s, models.TypeIgnored)
}

func typed[T models.Entity](s *Service, t models.Type) []T {
	all := s.entities.GetAll(t)
	out := make([]T, 0, len(all))
	for _, ent := range all {
		if v, ok := ent.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// IsIgnored reports whether term is on the ignore list: either an ignored
// entity's id equals the slug of term, or its name equals the raw input
// case-insensitively.
func (s *Service) IsIgnored(term string) bool {
	slug := models.Slug(term)
	for _, ent := range s.entities.GetAll(models.TypeIgnored) {
		base := ent.Base()
		if base.ID == slug || strings.EqualFold(base.Name, term) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Mutation
// ---------------------------------------------------------------------------

// SaveEntity persists ent into the closest discovered marker directory and
// updates the in-memory collection. Returns ErrNoContext when discovery found
// nothing to save into.
func (s *Service) SaveEntity(ent models.Entity) (string, error) {
	if !s.HasContext() {
		return "", fmt.Errorf("SaveEntity: %w", ErrNoContext)
	}
	path, err := s.entities.Save(ent, s.dirs[0].Path)
	if err != nil {
		return "", fmt.Errorf("SaveEntity: %w", err)
	}
	return path, nil
}

// DeleteEntity locates the winning document for type/id across all resolved
// storage directories and removes it from whichever directory it falls
// under. Returns false when no file exists.
func (s *Service) DeleteEntity(t models.Type, id string) bool {
	path := s.entities.EntityFilePath(t, id, s.storageDirs)
	if path == "" {
		return false
	}
	for _, dir := range s.storageDirs {
		if strings.HasPrefix(path, dir+string(os.PathSeparator)) {
			return s.entities.Delete(t, id, dir)
		}
	}
	return false
}
