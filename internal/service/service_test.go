package service_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/protokoll/internal/models"
	"github.com/go-ports/protokoll/internal/service"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// scaffold creates a context scope in dir: a .protokoll marker with the given
// config content (empty means no config file) and a context/ storage dir.
func scaffold(c *qt.C, dir, configYAML string) {
	c.TB.Helper()
	marker := filepath.Join(dir, ".protokoll")
	c.Assert(os.MkdirAll(marker, 0o755), qt.IsNil)
	if configYAML != "" {
		c.Assert(os.WriteFile(filepath.Join(marker, "config.yaml"), []byte(configYAML), 0o644), qt.IsNil)
	}
	c.Assert(os.MkdirAll(filepath.Join(dir, "context"), 0o755), qt.IsNil)
}

// writeEntity writes an entity document into dir's conventional storage.
func writeEntity(c *qt.C, dir string, t models.Type, id, body string) {
	c.TB.Helper()
	sub := filepath.Join(dir, "context", t.DirName())
	c.Assert(os.MkdirAll(sub, 0o755), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(sub, id+".yaml"), []byte(body), 0o644), qt.IsNil)
}

func newService(c *qt.C, startDir string) *service.Service {
	c.TB.Helper()
	svc, err := service.New(service.Options{StartDir: startDir})
	c.Assert(err, qt.IsNil)
	return svc
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func TestNew_HappyPath(t *testing.T) {
	c := qt.New(t)

	root := c.TB.TempDir()
	leaf := filepath.Join(root, "leaf")
	scaffold(c, root, "smart_assistance:\n  model: root-model\n")
	scaffold(c, leaf, "")
	writeEntity(c, root, models.TypePerson, "john", "id: john\nname: Root John\n")
	writeEntity(c, leaf, models.TypePerson, "john", "id: john\nname: Leaf John\n")
	writeEntity(c, root, models.TypeTerm, "sla", "id: sla\nname: SLA\n")

	svc := newService(c, leaf)

	c.Assert(svc.HasContext(), qt.IsTrue)
	c.Assert(svc.Dirs(), qt.HasLen, 2)
	c.Assert(svc.Dirs()[0].Path, qt.Equals, leaf)
	c.Assert(svc.StorageDirs(), qt.DeepEquals, []string{
		filepath.Join(root, "context"),
		filepath.Join(leaf, "context"),
	})
	c.Assert(svc.SmartAssist().Model, qt.Equals, "root-model")

	// Closest directory wins for the shared id; the root-only term is still
	// visible.
	person, ok := svc.Person("john")
	c.Assert(ok, qt.IsTrue)
	c.Assert(person.Name, qt.Equals, "Leaf John")
	c.Assert(svc.Terms(), qt.HasLen, 1)
}

func TestNew_NoContext(t *testing.T) {
	c := qt.New(t)

	svc := newService(c, c.TB.TempDir())
	c.Assert(svc.HasContext(), qt.IsFalse)
	for _, typ := range models.Types {
		c.Assert(svc.Entities(typ), qt.HasLen, 0)
	}

	_, err := svc.SaveEntity(&models.Term{BaseEntity: models.BaseEntity{
		ID: "sla", Name: "SLA", Type: models.TypeTerm,
	}})
	c.Assert(errors.Is(err, service.ErrNoContext), qt.IsTrue)
}

func TestReload_PicksUpEntityChangesOnly(t *testing.T) {
	c := qt.New(t)

	dir := c.TB.TempDir()
	scaffold(c, dir, "")
	svc := newService(c, dir)
	c.Assert(svc.People(), qt.HasLen, 0)

	writeEntity(c, dir, models.TypePerson, "john", "id: john\nname: John\n")
	svc.Reload()
	c.Assert(svc.People(), qt.HasLen, 1)
}

func TestLoad_RerunsDiscovery(t *testing.T) {
	c := qt.New(t)

	root := c.TB.TempDir()
	leaf := filepath.Join(root, "leaf")
	scaffold(c, root, "")
	c.Assert(os.MkdirAll(leaf, 0o755), qt.IsNil)

	svc := newService(c, leaf)
	c.Assert(svc.Dirs(), qt.HasLen, 1)

	// A new closer scope appears; Reload cannot see it but Load can.
	scaffold(c, leaf, "")
	svc.Reload()
	c.Assert(svc.Dirs(), qt.HasLen, 1)
	c.Assert(svc.Load(), qt.IsNil)
	c.Assert(svc.Dirs(), qt.HasLen, 2)
}

// ---------------------------------------------------------------------------
// Mutation
// ---------------------------------------------------------------------------

func TestSaveEntity_TargetsClosestDirectory(t *testing.T) {
	c := qt.New(t)

	root := c.TB.TempDir()
	leaf := filepath.Join(root, "leaf")
	scaffold(c, root, "")
	scaffold(c, leaf, "")

	svc := newService(c, leaf)
	path, err := svc.SaveEntity(&models.Project{
		BaseEntity: models.BaseEntity{ID: "atlas", Name: "Atlas", Type: models.TypeProject},
		Routing:    "work",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(path, qt.Equals, filepath.Join(leaf, "context", "projects", "atlas.yaml"))

	proj, ok := svc.Project("atlas")
	c.Assert(ok, qt.IsTrue)
	c.Assert(proj.Routing, qt.Equals, "work")
}

func TestDeleteEntity_RemovesWinningFile(t *testing.T) {
	c := qt.New(t)

	root := c.TB.TempDir()
	leaf := filepath.Join(root, "leaf")
	scaffold(c, root, "")
	scaffold(c, leaf, "")
	writeEntity(c, root, models.TypePerson, "john", "id: john\nname: Root John\n")
	writeEntity(c, leaf, models.TypePerson, "john", "id: john\nname: Leaf John\n")

	svc := newService(c, leaf)
	c.Assert(svc.DeleteEntity(models.TypePerson, "john"), qt.IsTrue)

	// Only the winning (closest) file is gone.
	_, err := os.Stat(filepath.Join(leaf, "context", "people", "john.yaml"))
	c.Assert(os.IsNotExist(err), qt.IsTrue)
	_, err = os.Stat(filepath.Join(root, "context", "people", "john.yaml"))
	c.Assert(err, qt.IsNil)

	// After a reload the root version wins again.
	svc.Reload()
	person, ok := svc.Person("john")
	c.Assert(ok, qt.IsTrue)
	c.Assert(person.Name, qt.Equals, "Root John")

	c.Assert(svc.DeleteEntity(models.TypeTerm, "ghost"), qt.IsFalse)
}

// ---------------------------------------------------------------------------
// Ignore list
// ---------------------------------------------------------------------------

func TestIsIgnored_HappyPath(t *testing.T) {
	c := qt.New(t)

	dir := c.TB.TempDir()
	scaffold(c, dir, "")
	writeEntity(c, dir, models.TypeIgnored, "some-phrase", "id: some-phrase\nname: a throwaway filler\n")
	writeEntity(c, dir, models.TypeIgnored, "umm", "id: umm\nname: Umm\n")

	svc := newService(c, dir)

	cases := []struct {
		name string
		term string
		want bool
	}{
		{"slug match despite punctuation", "Some Phrase!", true},
		{"exact slug", "some-phrase", true},
		{"case-insensitive name match", "UMM", true},
		{"name match without slug match", "a throwaway filler", true},
		{"no match", "keep me", false},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(svc.IsIgnored(tc.term), qt.Equals, tc.want)
		})
	}
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

func TestSearchAndPhoneticLookup(t *testing.T) {
	c := qt.New(t)

	dir := c.TB.TempDir()
	scaffold(c, dir, "")
	writeEntity(c, dir, models.TypePerson, "pria", "id: pria\nname: Pria Anand\nsounds_like: [Pria]\n")
	writeEntity(c, dir, models.TypeProject, "atlas", "id: atlas\nname: Atlas Anandtech\n")

	svc := newService(c, dir)

	results := svc.Search("anand")
	c.Assert(results, qt.HasLen, 2)
	c.Assert(results[0].Base().Type, qt.Equals, models.TypePerson)

	ent, ok := svc.FindBySoundsLike("  PRIA ")
	c.Assert(ok, qt.IsTrue)
	c.Assert(ent.Base().ID, qt.Equals, "pria")
}

func TestConfigOverridesStoragePath(t *testing.T) {
	c := qt.New(t)

	dir := c.TB.TempDir()
	scaffold(c, dir, "context_path: records\n")
	records := filepath.Join(dir, "records", "people")
	c.Assert(os.MkdirAll(records, 0o755), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(records, "john.yaml"), []byte("id: john\nname: John\n"), 0o644), qt.IsNil)

	svc := newService(c, dir)
	c.Assert(svc.StorageDirs(), qt.DeepEquals, []string{filepath.Join(dir, "records")})
	_, ok := svc.Person("john")
	c.Assert(ok, qt.IsTrue)
}
