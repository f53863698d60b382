package graph

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/matzehuels/kintree/pkg/core/family"
)

// =============================================================================
// Constants
// =============================================================================

// Edge types.
const (
	EdgeTypeChild   = "child"
	EdgeTypePartner = "partner"
)

// Format is a supported interchange encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported graph format %q", filepath.Ext(path))
	}
}

// =============================================================================
// Graph - Family Graph Serialization
// =============================================================================

// Graph is the interchange format for family graphs.
//
// The format is human-readable and designed for round-trip fidelity:
// import → export → re-import produces the same family graph.
type Graph struct {
	People []Person `json:"people" toml:"people" yaml:"people"`
	Edges  []Edge   `json:"edges,omitempty" toml:"edges,omitempty" yaml:"edges,omitempty"`
}

// Person is one person in the interchange format.
type Person struct {
	ID     string         `json:"id" toml:"id" yaml:"id"`
	Label  string         `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Father string         `json:"father,omitempty" toml:"father,omitempty" yaml:"father,omitempty"`
	Mother string         `json:"mother,omitempty" toml:"mother,omitempty" yaml:"mother,omitempty"`
	Meta   map[string]any `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
}

// Edge is a typed link. Type defaults to "child" when empty.
type Edge struct {
	From string `json:"from" toml:"from" yaml:"from"`
	To   string `json:"to" toml:"to" yaml:"to"`
	Type string `json:"type,omitempty" toml:"type,omitempty" yaml:"type,omitempty"`
}

// =============================================================================
// family.Graph ↔ Graph Conversion
// =============================================================================

// FromFamily converts a family graph to its serialization format.
// People are sorted by ID. Child edges implied by father/mother references
// are omitted, and each partner pair is written once.
func FromFamily(g *family.Graph) Graph {
	out := Graph{People: make([]Person, 0, g.PersonCount())}
	for _, p := range g.People() {
		out.People = append(out.People, Person{
			ID:     p.ID,
			Label:  p.Label,
			Father: p.FatherID,
			Mother: p.MotherID,
			Meta:   cleanMeta(p.Meta),
		})
	}

	for _, e := range g.Edges() {
		switch e.Kind {
		case family.EdgePartner:
			if e.From < e.To {
				out.Edges = append(out.Edges, Edge{From: e.From, To: e.To, Type: EdgeTypePartner})
			}
		case family.EdgeChild:
			child, _ := g.Person(e.To)
			if child.FatherID != e.From && child.MotherID != e.From {
				out.Edges = append(out.Edges, Edge{From: e.From, To: e.To, Type: EdgeTypeChild})
			}
		}
	}
	return out
}

// ToFamily converts a serialized graph into a family graph.
//
// Father and mother references that resolve to listed people add child
// edges. A child edge with no matching reference fills the child's empty
// father slot, then mother slot; when both are taken by others the edge is
// kept so [family.Graph.Validate] reports it. Unresolved references are kept so [family.Graph.Validate] can report
// them. Partner edges are made symmetric. Returns an error for duplicate or
// empty IDs, edges naming unknown people, or unknown edge types.
func ToFamily(in Graph) (*family.Graph, error) {
	g := family.New()
	for _, p := range in.People {
		fp := family.Person{
			ID:       p.ID,
			Label:    p.Label,
			FatherID: p.Father,
			MotherID: p.Mother,
			Meta:     maps.Clone(p.Meta),
		}
		if err := g.AddPerson(fp); err != nil {
			return nil, fmt.Errorf("add person %q: %w", p.ID, err)
		}
	}

	for _, p := range in.People {
		for _, parent := range []string{p.Father, p.Mother} {
			if parent == "" || !g.Has(parent) {
				continue
			}
			if err := g.AddEdge(family.Edge{From: parent, To: p.ID, Kind: family.EdgeChild}); err != nil {
				return nil, fmt.Errorf("link %s→%s: %w", parent, p.ID, err)
			}
		}
	}

	for _, e := range in.Edges {
		var err error
		switch e.Type {
		case "", EdgeTypeChild:
			err = addChildEdge(g, e.From, e.To)
		case EdgeTypePartner:
			err = g.AddPartner(e.From, e.To)
		default:
			err = fmt.Errorf("unknown edge type %q", e.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// addChildEdge records parent as a parent of child the way
// [family.Graph.AddChild] does.
func addChildEdge(g *family.Graph, parent, child string) error {
	err := g.AddChild(parent, child)
	if errors.Is(err, family.ErrParentsFull) {
		return g.AddEdge(family.Edge{From: parent, To: child, Kind: family.EdgeChild})
	}
	return err
}

// cleanMeta returns a copy of metadata, or nil when it is empty.
func cleanMeta(m family.Metadata) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(map[string]any(m))
}
