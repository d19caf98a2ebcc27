// Package models defines the entity types stored in a protokoll context.
package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Type identifies one of the five entity kinds. The value is never read from
// a persisted document; it is re-derived from the typed subdirectory an
// entity was loaded from.
type Type string

const (
	TypePerson  Type = "person"
	TypeProject Type = "project"
	TypeCompany Type = "company"
	TypeTerm    Type = "term"
	TypeIgnored Type = "ignored"
)

// Types lists every entity type in its fixed precedence order. Store
// operations that span all collections iterate in this order so that
// cross-type results are deterministic.
var Types = []Type{TypePerson, TypeProject, TypeCompany, TypeTerm, TypeIgnored}

// dirNames maps each type to its storage subdirectory name.
var dirNames = map[Type]string{
	TypePerson:  "people",
	TypeProject: "projects",
	TypeCompany: "companies",
	TypeTerm:    "terms",
	TypeIgnored: "ignored",
}

// Valid reports whether t is one of the five known entity types.
func (t Type) Valid() bool {
	_, ok := dirNames[t]
	return ok
}

// DirName returns the storage subdirectory name for t.
func (t Type) DirName() string {
	return dirNames[t]
}

// ParseType resolves s (a type name or its subdirectory name) to a Type.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t := Type(s); t.Valid() {
		return t, nil
	}
	for t, dir := range dirNames {
		if s == dir {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q (expected person, project, company, term, or ignored)", s)
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

// Relationship links an entity to another via a protokoll:// URI.
type Relationship struct {
	URI      string            `yaml:"uri"`
	Kind     string            `yaml:"relationship"`
	Notes    string            `yaml:"notes,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// BaseEntity holds the fields shared by every entity kind. Type carries the
// collection an entity belongs to in memory only; it is excluded from the
// persisted document and re-derived on load.
type BaseEntity struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Type          Type           `yaml:"-"`
	CreatedAt     string         `yaml:"created_at,omitempty"`
	UpdatedAt     string         `yaml:"updated_at,omitempty"`
	Notes         string         `yaml:"notes,omitempty"`
	SoundsLike    []string       `yaml:"sounds_like,omitempty"`
	Relationships []Relationship `yaml:"relationships,omitempty"`
}

// Base returns the embedded BaseEntity, satisfying Entity.
func (b *BaseEntity) Base() *BaseEntity { return b }

// Entity is implemented by all five concrete entity structs.
type Entity interface {
	Base() *BaseEntity
}

// Person is someone who appears in transcripts.
type Person struct {
	BaseEntity `yaml:",inline"`
	Email      string   `yaml:"email,omitempty"`
	Role       string   `yaml:"role,omitempty"`
	Company    string   `yaml:"company,omitempty"`
	Aliases    []string `yaml:"aliases,omitempty"`
}

// Project is a routing target for transcript content.
type Project struct {
	BaseEntity     `yaml:",inline"`
	Classification string `yaml:"classification,omitempty"`
	Routing        string `yaml:"routing,omitempty"`
	Active         bool   `yaml:"active,omitempty"`
}

// Company is an organisation referenced by people and projects.
type Company struct {
	BaseEntity `yaml:",inline"`
	Domain     string `yaml:"domain,omitempty"`
	Industry   string `yaml:"industry,omitempty"`
}

// Term is a domain word or acronym with its meaning.
type Term struct {
	BaseEntity `yaml:",inline"`
	Definition string `yaml:"definition,omitempty"`
	Expansion  string `yaml:"expansion,omitempty"`
}

// IgnoredTerm marks a phrase that should never be treated as an entity.
type IgnoredTerm struct {
	BaseEntity `yaml:",inline"`
	Reason     string `yaml:"reason,omitempty"`
}

// New returns a fresh entity of the given type with Type pre-set. Every
// per-type branch in the repo funnels through this switch.
func New(t Type) Entity {
	switch t {
	case TypePerson:
		return &Person{BaseEntity: BaseEntity{Type: t}}
	case TypeProject:
		return &Project{BaseEntity: BaseEntity{Type: t}}
	case TypeCompany:
		return &Company{BaseEntity: BaseEntity{Type: t}}
	case TypeTerm:
		return &Term{BaseEntity: BaseEntity{Type: t}}
	case TypeIgnored:
		return &IgnoredTerm{BaseEntity: BaseEntity{Type: t}}
	default:
		return nil
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts free text to a lowercase hyphenated identifier:
// non-alphanumeric runs collapse to single hyphens with no leading or
// trailing hyphen.
func Slug(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
