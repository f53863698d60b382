package family

import (
	"errors"
	"maps"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPersonID is returned by [Graph.AddPerson] when the ID is empty.
	ErrInvalidPersonID = errors.New("person ID must not be empty")

	// ErrDuplicatePersonID is returned by [Graph.AddPerson] when a person with
	// the same ID already exists.
	ErrDuplicatePersonID = errors.New("duplicate person ID")

	// ErrUnknownPerson is returned when an operation references an ID that is
	// not in the graph.
	ErrUnknownPerson = errors.New("unknown person")

	// ErrSelfRelation is returned when a person is linked to themselves.
	ErrSelfRelation = errors.New("person cannot be related to themselves")

	// ErrParentsFull is returned by [Graph.AddChild] when the child already
	// has both a father and a mother recorded.
	ErrParentsFull = errors.New("child already has two parents")

	// ErrParentCycle is returned when a parent link would make a person their
	// own ancestor.
	ErrParentCycle = errors.New("parent link would create a cycle")

	// ErrDanglingParent is returned by [Graph.Validate] when a father or
	// mother reference does not resolve to a person in the graph.
	ErrDanglingParent = errors.New("parent reference does not resolve")

	// ErrAsymmetricPartner is returned by [Graph.Validate] when a partner edge
	// exists in one direction only.
	ErrAsymmetricPartner = errors.New("partner edge is not symmetric")

	// ErrGraphHasCycle is returned by [Graph.Validate] when the parent
	// relation contains a cycle.
	ErrGraphHasCycle = errors.New("graph contains a parent cycle")

	// ErrOrphanChildEdge is returned by [Graph.Validate] when a child edge
	// points at a person who records neither endpoint as father or mother.
	ErrOrphanChildEdge = errors.New("child edge has no matching parent reference")
)

// Metadata stores arbitrary key-value pairs attached to a person
// (birth date, notes, ...). The layout and kinship packages never read it.
type Metadata map[string]any

// Role identifies which parent slot a link fills.
type Role int

const (
	// Father fills the person's father reference.
	Father Role = iota
	// Mother fills the person's mother reference.
	Mother
)

// String returns "father" or "mother".
func (r Role) String() string {
	if r == Mother {
		return "mother"
	}
	return "father"
}

// Person is a node in the family graph.
//
// FatherID and MotherID are weak references: empty means unknown.
type Person struct {
	ID       string
	Label    string
	FatherID string
	MotherID string
	Meta     Metadata
}

// DisplayLabel returns the label if set, otherwise the ID.
func (p Person) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// HasParents reports whether either parent is recorded.
func (p Person) HasParents() bool { return p.FatherID != "" || p.MotherID != "" }

// EdgeKind distinguishes child edges from partner edges.
type EdgeKind int

const (
	// EdgeChild is a directed parent → child edge.
	EdgeChild EdgeKind = iota
	// EdgePartner is one direction of a symmetric partner pair.
	EdgePartner
)

// String returns "child" or "partner".
func (k EdgeKind) String() string {
	if k == EdgePartner {
		return "partner"
	}
	return "child"
}

// Edge is a typed connection between two people.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Graph is a genealogical graph of people, child edges and partner edges.
//
// The zero value is not usable - use New to create a Graph.
type Graph struct {
	people   map[string]*Person
	children map[string][]string // parent ID -> child IDs (child edges)
	partners map[string][]string // person ID -> partner IDs (partner edges)
	version  string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		people:   make(map[string]*Person),
		children: make(map[string][]string),
		partners: make(map[string][]string),
		version:  uuid.NewString(),
	}
}

// Version returns an identifier that changes on every mutation.
func (g *Graph) Version() string { return g.version }

func (g *Graph) touch() { g.version = uuid.NewString() }

// AddPerson adds a person to the graph.
// Returns ErrInvalidPersonID for an empty ID or ErrDuplicatePersonID if the
// ID is taken. Parent references are stored as given; use SetParent to also
// record the child edge, or Validate to check imported references.
func (g *Graph) AddPerson(p Person) error {
	if p.ID == "" {
		return ErrInvalidPersonID
	}
	if _, exists := g.people[p.ID]; exists {
		return ErrDuplicatePersonID
	}
	if p.Meta == nil {
		p.Meta = Metadata{}
	}
	g.people[p.ID] = &p
	g.touch()
	return nil
}

// SetParent records parentID as the child's father or mother and adds the
// parent → child edge. An existing parent in that slot is replaced and its
// child edge removed.
//
// Returns ErrUnknownPerson if either ID is missing, ErrSelfRelation if they
// are equal, or ErrParentCycle if parentID is already a descendant of
// childID.
func (g *Graph) SetParent(childID, parentID string, role Role) error {
	child, ok := g.people[childID]
	if !ok {
		return ErrUnknownPerson
	}
	if _, ok := g.people[parentID]; !ok {
		return ErrUnknownPerson
	}
	if childID == parentID {
		return ErrSelfRelation
	}
	if g.isAncestor(childID, parentID) {
		return ErrParentCycle
	}

	slot := &child.FatherID
	if role == Mother {
		slot = &child.MotherID
	}
	if old := *slot; old != "" && old != parentID {
		other := child.MotherID
		if role == Mother {
			other = child.FatherID
		}
		if other != old {
			g.removeChildEdge(old, childID)
		}
	}
	*slot = parentID
	g.addChildEdge(parentID, childID)
	g.touch()
	return nil
}

// AddChild links parentID to childID, filling the child's father slot first
// and the mother slot second. Returns ErrParentsFull when both are taken by
// other people. Linking an already-recorded parent only ensures the edge.
func (g *Graph) AddChild(parentID, childID string) error {
	child, ok := g.people[childID]
	if !ok {
		return ErrUnknownPerson
	}
	switch {
	case child.FatherID == parentID:
		return g.SetParent(childID, parentID, Father)
	case child.MotherID == parentID:
		return g.SetParent(childID, parentID, Mother)
	case child.FatherID == "":
		return g.SetParent(childID, parentID, Father)
	case child.MotherID == "":
		return g.SetParent(childID, parentID, Mother)
	default:
		return ErrParentsFull
	}
}

// AddPartner links a and b with a symmetric pair of partner edges.
// Adding an existing partnership is a no-op.
func (g *Graph) AddPartner(a, b string) error {
	if _, ok := g.people[a]; !ok {
		return ErrUnknownPerson
	}
	if _, ok := g.people[b]; !ok {
		return ErrUnknownPerson
	}
	if a == b {
		return ErrSelfRelation
	}
	if !slices.Contains(g.partners[a], b) {
		g.partners[a] = append(g.partners[a], b)
	}
	if !slices.Contains(g.partners[b], a) {
		g.partners[b] = append(g.partners[b], a)
	}
	g.touch()
	return nil
}

// RemovePerson deletes a person together with every edge touching them and
// clears father/mother references that pointed at them.
func (g *Graph) RemovePerson(id string) error {
	if _, ok := g.people[id]; !ok {
		return ErrUnknownPerson
	}
	for _, p := range g.people {
		if p.FatherID == id {
			p.FatherID = ""
		}
		if p.MotherID == id {
			p.MotherID = ""
		}
	}
	for parent := range g.children {
		g.children[parent] = slices.DeleteFunc(g.children[parent], func(c string) bool { return c == id })
	}
	for _, partner := range g.partners[id] {
		g.partners[partner] = slices.DeleteFunc(g.partners[partner], func(p string) bool { return p == id })
	}
	delete(g.children, id)
	delete(g.partners, id)
	delete(g.people, id)
	g.touch()
	return nil
}

// AddEdge inserts a single raw edge between existing people. It exists for
// importers that replay stored edge lists; AddPartner and SetParent are the
// normal mutators. Duplicate edges are ignored.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.people[e.From]; !ok {
		return ErrUnknownPerson
	}
	if _, ok := g.people[e.To]; !ok {
		return ErrUnknownPerson
	}
	if e.From == e.To {
		return ErrSelfRelation
	}
	if e.Kind == EdgePartner {
		if !slices.Contains(g.partners[e.From], e.To) {
			g.partners[e.From] = append(g.partners[e.From], e.To)
		}
	} else {
		g.addChildEdge(e.From, e.To)
	}
	g.touch()
	return nil
}

func (g *Graph) addChildEdge(parent, child string) {
	if !slices.Contains(g.children[parent], child) {
		g.children[parent] = append(g.children[parent], child)
	}
}

func (g *Graph) removeChildEdge(parent, child string) {
	g.children[parent] = slices.DeleteFunc(g.children[parent], func(c string) bool { return c == child })
}

// isAncestor reports whether candidate is reachable from id by following
// father/mother references.
func (g *Graph) isAncestor(candidate, id string) bool {
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, p := range g.Parents(curr) {
			if p == candidate {
				return true
			}
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// Person returns the person with the given ID and true, or the zero value
// and false if not found. The returned value is a copy.
func (g *Graph) Person(id string) (Person, bool) {
	p, ok := g.people[id]
	if !ok {
		return Person{}, false
	}
	return *p, true
}

// Has reports whether id is in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.people[id]
	return ok
}

// People returns copies of all people sorted by ID.
func (g *Graph) People() []Person {
	out := make([]Person, 0, len(g.people))
	for _, id := range g.IDs() {
		out = append(out, *g.people[id])
	}
	return out
}

// IDs returns all person IDs in ascending order.
func (g *Graph) IDs() []string {
	return slices.Sorted(maps.Keys(g.people))
}

// PersonCount returns the number of people in the graph.
func (g *Graph) PersonCount() int { return len(g.people) }

// EdgeCount returns the number of stored edges, counting each direction of
// a partner pair separately.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, c := range g.children {
		n += len(c)
	}
	for _, p := range g.partners {
		n += len(p)
	}
	return n
}

// Parents returns the recorded father and mother IDs of id that resolve to
// people in the graph, father first. Returns nil if none are known.
func (g *Graph) Parents(id string) []string {
	p, ok := g.people[id]
	if !ok {
		return nil
	}
	var out []string
	if p.FatherID != "" && g.Has(p.FatherID) {
		out = append(out, p.FatherID)
	}
	if p.MotherID != "" && p.MotherID != p.FatherID && g.Has(p.MotherID) {
		out = append(out, p.MotherID)
	}
	return out
}

// Children returns the targets of id's child edges in ascending ID order.
func (g *Graph) Children(id string) []string {
	return sortedCopy(g.children[id])
}

// PartnerEdges returns the targets of id's explicit partner edges in
// ascending ID order. Inferred co-parents are not included; see
// [Graph.Partners].
func (g *Graph) PartnerEdges(id string) []string {
	return sortedCopy(g.partners[id])
}

// Partners returns the union of explicit partner-edge targets and inferred
// co-parents (the other recorded parent of any child id parents), in
// ascending ID order.
func (g *Graph) Partners(id string) []string {
	set := make(map[string]struct{})
	for _, p := range g.partners[id] {
		set[p] = struct{}{}
	}
	for _, child := range g.children[id] {
		for _, parent := range g.Parents(child) {
			if parent != id {
				set[parent] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Edges returns all stored edges ordered by (From, Kind, To).
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, from := range g.IDs() {
		for _, to := range g.Children(from) {
			out = append(out, Edge{From: from, To: to, Kind: EdgeChild})
		}
		for _, to := range g.PartnerEdges(from) {
			out = append(out, Edge{From: from, To: to, Kind: EdgePartner})
		}
	}
	return out
}

// Clone returns a deep copy of the graph with the same version.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		people:   make(map[string]*Person, len(g.people)),
		children: make(map[string][]string, len(g.children)),
		partners: make(map[string][]string, len(g.partners)),
		version:  g.version,
	}
	for id, p := range g.people {
		cp := *p
		cp.Meta = maps.Clone(p.Meta)
		out.people[id] = &cp
	}
	for id, c := range g.children {
		out.children[id] = slices.Clone(c)
	}
	for id, p := range g.partners {
		out.partners[id] = slices.Clone(p)
	}
	return out
}

func sortedCopy(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
