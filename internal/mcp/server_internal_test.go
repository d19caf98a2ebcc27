package mcp

// White-box testing required: entityToMap and typeNames are unexported
// helpers that shape outgoing MCP tool responses. They are not reachable
// through the public NewServer API, so direct access is required to cover
// their edge cases.

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/protokoll/internal/models"
)

func TestTypeNames(t *testing.T) {
	c := qt.New(t)
	c.Assert(typeNames(), qt.DeepEquals, []string{"person", "project", "company", "term", "ignored"})
}

func TestEntityToMap_HappyPath(t *testing.T) {
	c := qt.New(t)

	person := &models.Person{
		BaseEntity: models.BaseEntity{
			ID:         "pria",
			Name:       "Pria Anand",
			Type:       models.TypePerson,
			SoundsLike: []string{"Pria"},
		},
		Email: "pria@example.com",
	}

	m := entityToMap(person)
	c.Assert(m["id"], qt.Equals, "pria")
	c.Assert(m["name"], qt.Equals, "Pria Anand")
	c.Assert(m["email"], qt.Equals, "pria@example.com")
	c.Assert(m["type"], qt.Equals, "person")
	c.Assert(m["sounds_like"], qt.DeepEquals, []any{"Pria"})

	// Empty optional fields are omitted, not nulled.
	_, hasNotes := m["notes"]
	c.Assert(hasNotes, qt.IsFalse)
}
