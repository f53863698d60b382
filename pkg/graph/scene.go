package graph

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/matzehuels/kintree/pkg/core/family"
	"github.com/matzehuels/kintree/pkg/core/kinship"
	"github.com/matzehuels/kintree/pkg/core/layout"
	"github.com/matzehuels/kintree/pkg/core/palette"
)

// =============================================================================
// Scene - Positioned, Classified Output
// =============================================================================

// Scene is the serialization format for a laid-out family graph seen from
// one focus person. It carries everything a renderer needs: positions,
// relationship labels and colors.
type Scene struct {
	Focus  string `json:"focus"`
	Status string `json:"status"`

	// Frame dimensions, padded by one node size on every side.
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`

	Nodes []SceneNode      `json:"nodes"`
	Edges []SceneEdge      `json:"edges,omitempty"`
	Rows  map[int][]string `json:"rows,omitempty"` // generation → person IDs
}

// SceneNode is one positioned person.
type SceneNode struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Category    string  `json:"category"`
	Relation    string  `json:"relation"`
	Generation  int     `json:"generation"`
	Degree      int     `json:"degree"`
	Fill        string  `json:"fill"`
	Border      string  `json:"border"`
	StrokeWidth int     `json:"stroke_width"`
}

// SceneEdge is a colored link between two positioned people.
type SceneEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

// NewScene assembles a scene from a layout result and the classification
// of every person against focus. Only positioned people become nodes, so a
// degraded layout yields a single-node scene. Edges are kept when both ends
// are positioned; each partner pair appears once.
func NewScene(g *family.Graph, focus string, res layout.Result, rels map[string]kinship.Relationship) Scene {
	b := res.Bounds()
	s := Scene{
		Focus:      focus,
		Status:     res.Status.String(),
		MinX:       b.MinX,
		MinY:       b.MinY,
		Width:      b.Width(),
		Height:     b.Height(),
		NodeWidth:  res.Config.NodeWidth,
		NodeHeight: res.Config.NodeHeight,
		Nodes:      make([]SceneNode, 0, len(res.Positions)),
	}

	for _, id := range slices.Sorted(maps.Keys(res.Positions)) {
		p := res.Positions[id]
		rel := rels[id]
		style := palette.Node(rel)
		label := id
		if person, ok := g.Person(id); ok {
			label = person.DisplayLabel()
		}
		s.Nodes = append(s.Nodes, SceneNode{
			ID:          id,
			Label:       label,
			X:           p.X,
			Y:           p.Y,
			Category:    string(rel.Category),
			Relation:    rel.Label,
			Generation:  rel.Generation,
			Degree:      rel.Degree,
			Fill:        style.Fill,
			Border:      style.Border,
			StrokeWidth: style.StrokeWidth,
		})
		if rel.Related() {
			if s.Rows == nil {
				s.Rows = make(map[int][]string)
			}
			s.Rows[rel.Generation] = append(s.Rows[rel.Generation], id)
		}
	}

	for _, e := range g.Edges() {
		_, okFrom := res.Positions[e.From]
		_, okTo := res.Positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		typ := EdgeTypeChild
		if e.Kind == family.EdgePartner {
			if e.From > e.To {
				continue
			}
			typ = EdgeTypePartner
		}
		s.Edges = append(s.Edges, SceneEdge{
			From:  e.From,
			To:    e.To,
			Type:  typ,
			Color: palette.Edge(focus, rels[e.From], rels[e.To]),
		})
	}
	return s
}

// Node returns the scene node with the given ID.
func (s *Scene) Node(id string) (SceneNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return SceneNode{}, false
}

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene.
// Validates that the focus is named and present among the nodes.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}
	if s.Focus == "" {
		return Scene{}, fmt.Errorf("scene must name a focus")
	}
	if len(s.Nodes) > 0 {
		if _, ok := s.Node(s.Focus); !ok {
			return Scene{}, fmt.Errorf("scene focus %q has no node", s.Focus)
		}
	}
	return s, nil
}

// WriteSceneFile writes a Scene to a JSON file.
func WriteSceneFile(s Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}
