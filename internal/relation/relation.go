// Package relation computes parent/child/sibling/cousin relationships and a
// bounded distance metric over entities linked by protokoll:// URIs.
package relation

import (
	"fmt"
	"regexp"

	"github.com/go-ports/protokoll/internal/models"
)

// URIScheme is the literal scheme token for relationship URIs.
const URIScheme = "protokoll"

// Relationship kinds with defined semantics. Kind is freeform in the data
// model; only these three participate in the distance metric.
const (
	KindParent  = "parent"
	KindChild   = "child"
	KindSibling = "sibling"
)

// Distance values returned by Distance.
const (
	DistanceSame      = 0
	DistanceParent    = 1
	DistanceSibling   = 2
	DistanceUnrelated = -1
)

var uriPattern = regexp.MustCompile(`^` + URIScheme + `://([^/]+)/(.+)$`)

// URIFor builds the canonical relationship URI for an entity.
func URIFor(t models.Type, id string) string {
	return fmt.Sprintf("%s://%s/%s", URIScheme, t, id)
}

// ParseURI extracts the entity type and id from a relationship URI of the
// form protokoll://{type}/{id}. ok is false when uri does not match.
func ParseURI(uri string) (t models.Type, id string, ok bool) {
	m := uriPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", "", false
	}
	return models.Type(m[1]), m[2], true
}

// RelatedIDs returns the entity ids of e's relationships of the given kind,
// skipping any whose URI does not parse.
func RelatedIDs(e models.Entity, kind string) []string {
	var ids []string
	for _, rel := range e.Base().Relationships {
		if rel.Kind != kind {
			continue
		}
		if _, id, ok := ParseURI(rel.URI); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParentID returns the id from e's parent relationship, of which at most one
// is expected. ok is false when e declares no parseable parent.
func ParentID(e models.Entity) (string, bool) {
	ids := RelatedIDs(e, KindParent)
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// IsParent reports whether a is the declared parent of b.
func IsParent(a, b models.Entity) bool {
	parent, ok := ParentID(b)
	return ok && parent == a.Base().ID
}

// IsChild reports whether a is a declared child of b.
func IsChild(a, b models.Entity) bool {
	return IsParent(b, a)
}

// AreSiblings reports whether a and b declare each other as siblings. A
// one-sided declaration in either direction is sufficient.
func AreSiblings(a, b models.Entity) bool {
	if containsID(RelatedIDs(a, KindSibling), b.Base().ID) {
		return true
	}
	return containsID(RelatedIDs(b, KindSibling), a.Base().ID)
}

// Distance returns the bounded relationship distance between a and b:
// 0 for the same id, 1 for a declared parent/child link in either direction,
// 2 for declared siblings or for two entities sharing a declared parent id
// (cousins), and -1 when unrelated. Rules are checked in that exact order;
// the first match wins.
func Distance(a, b models.Entity) int {
	if a.Base().ID == b.Base().ID {
		return DistanceSame
	}
	if IsParent(a, b) || IsChild(a, b) {
		return DistanceParent
	}
	if AreSiblings(a, b) {
		return DistanceSibling
	}
	if aParent, ok := ParentID(a); ok {
		if bParent, ok := ParentID(b); ok && aParent == bParent {
			return DistanceSibling
		}
	}
	return DistanceUnrelated
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
