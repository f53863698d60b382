package family

import (
	"errors"
	"slices"
	"testing"
)

func mustAdd(t *testing.T, g *Graph, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := g.AddPerson(Person{ID: id, Label: "P" + id}); err != nil {
			t.Fatalf("AddPerson(%s): %v", id, err)
		}
	}
}

func TestAddPerson(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		person  Person
		wantErr error
	}{
		{name: "valid", person: Person{ID: "a"}},
		{name: "empty id", person: Person{}, wantErr: ErrInvalidPersonID},
		{name: "duplicate", setup: []string{"a"}, person: Person{ID: "a"}, wantErr: ErrDuplicatePersonID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			mustAdd(t, g, tt.setup...)
			err := g.AddPerson(tt.person)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddPerson() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddPersonInitializesMeta(t *testing.T) {
	g := New()
	mustAdd(t, g, "a")
	p, ok := g.Person("a")
	if !ok {
		t.Fatal("person a not found")
	}
	if p.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddChildFillsFatherThenMother(t *testing.T) {
	g := New()
	mustAdd(t, g, "f", "m", "x", "c")

	if err := g.AddChild("f", "c"); err != nil {
		t.Fatalf("AddChild(f): %v", err)
	}
	if err := g.AddChild("m", "c"); err != nil {
		t.Fatalf("AddChild(m): %v", err)
	}
	if err := g.AddChild("x", "c"); !errors.Is(err, ErrParentsFull) {
		t.Fatalf("AddChild(x) error = %v, want ErrParentsFull", err)
	}

	c, _ := g.Person("c")
	if c.FatherID != "f" || c.MotherID != "m" {
		t.Errorf("parents = (%q, %q), want (f, m)", c.FatherID, c.MotherID)
	}
	if got := g.Children("f"); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Children(f) = %v, want [c]", got)
	}
	if got := g.Parents("c"); !slices.Equal(got, []string{"f", "m"}) {
		t.Errorf("Parents(c) = %v, want [f m]", got)
	}
}

func TestAddChildIsIdempotentForRecordedParent(t *testing.T) {
	g := New()
	mustAdd(t, g, "f", "c")
	_ = g.AddChild("f", "c")
	if err := g.AddChild("f", "c"); err != nil {
		t.Fatalf("second AddChild: %v", err)
	}
	if got := g.Children("f"); len(got) != 1 {
		t.Errorf("Children(f) = %v, want one entry", got)
	}
}

func TestSetParentReplacesEdge(t *testing.T) {
	g := New()
	mustAdd(t, g, "f1", "f2", "c")
	_ = g.SetParent("c", "f1", Father)
	if err := g.SetParent("c", "f2", Father); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if got := g.Children("f1"); len(got) != 0 {
		t.Errorf("Children(f1) = %v, want none", got)
	}
	if got := g.Children("f2"); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Children(f2) = %v, want [c]", got)
	}
}

func TestSetParentRejectsCycle(t *testing.T) {
	g := New()
	mustAdd(t, g, "a", "b", "c")
	_ = g.SetParent("b", "a", Father) // a -> b
	_ = g.SetParent("c", "b", Father) // b -> c

	if err := g.SetParent("a", "c", Father); !errors.Is(err, ErrParentCycle) {
		t.Fatalf("SetParent(a, c) error = %v, want ErrParentCycle", err)
	}
	if err := g.SetParent("a", "a", Mother); !errors.Is(err, ErrSelfRelation) {
		t.Fatalf("SetParent(a, a) error = %v, want ErrSelfRelation", err)
	}
	if err := g.SetParent("a", "zz", Mother); !errors.Is(err, ErrUnknownPerson) {
		t.Fatalf("SetParent(a, zz) error = %v, want ErrUnknownPerson", err)
	}
}

func TestAddPartnerIsSymmetric(t *testing.T) {
	g := New()
	mustAdd(t, g, "a", "b")
	if err := g.AddPartner("a", "b"); err != nil {
		t.Fatalf("AddPartner: %v", err)
	}
	_ = g.AddPartner("b", "a")

	if got := g.PartnerEdges("a"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("PartnerEdges(a) = %v, want [b]", got)
	}
	if got := g.PartnerEdges("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("PartnerEdges(b) = %v, want [a]", got)
	}
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
	if err := g.AddPartner("a", "a"); !errors.Is(err, ErrSelfRelation) {
		t.Errorf("AddPartner(a, a) error = %v, want ErrSelfRelation", err)
	}
}

func TestPartnersIncludesCoParents(t *testing.T) {
	g := New()
	mustAdd(t, g, "f", "m", "w", "c1", "c2")
	_ = g.AddChild("f", "c1")
	_ = g.AddChild("m", "c1")
	_ = g.AddPartner("f", "w")
	_ = g.AddChild("f", "c2")

	if got := g.Partners("f"); !slices.Equal(got, []string{"m", "w"}) {
		t.Errorf("Partners(f) = %v, want [m w]", got)
	}
	if got := g.Partners("m"); !slices.Equal(got, []string{"f"}) {
		t.Errorf("Partners(m) = %v, want [f]", got)
	}
}

func TestRemovePersonClearsReferences(t *testing.T) {
	g := New()
	mustAdd(t, g, "f", "m", "c")
	_ = g.AddChild("f", "c")
	_ = g.AddChild("m", "c")
	_ = g.AddPartner("f", "m")

	if err := g.RemovePerson("f"); err != nil {
		t.Fatalf("RemovePerson: %v", err)
	}
	c, _ := g.Person("c")
	if c.FatherID != "" {
		t.Errorf("FatherID = %q, want empty", c.FatherID)
	}
	if got := g.PartnerEdges("m"); len(got) != 0 {
		t.Errorf("PartnerEdges(m) = %v, want none", got)
	}
	if g.Has("f") {
		t.Error("f should be removed")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after remove: %v", err)
	}
	if err := g.RemovePerson("f"); !errors.Is(err, ErrUnknownPerson) {
		t.Errorf("second RemovePerson error = %v, want ErrUnknownPerson", err)
	}
}

func TestVersionChangesOnMutation(t *testing.T) {
	g := New()
	v0 := g.Version()
	mustAdd(t, g, "a")
	v1 := g.Version()
	if v0 == v1 {
		t.Error("AddPerson should change the version")
	}
	_ = g.Children("a")
	if g.Version() != v1 {
		t.Error("reads should not change the version")
	}
	if g.Clone().Version() != v1 {
		t.Error("Clone should keep the version")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	mustAdd(t, g, "a", "b")
	c := g.Clone()
	_ = c.AddPartner("a", "b")
	if len(g.PartnerEdges("a")) != 0 {
		t.Error("mutating clone should not affect original")
	}
}

func TestEdges(t *testing.T) {
	g := New()
	mustAdd(t, g, "a", "b", "c")
	_ = g.AddPartner("a", "b")
	_ = g.AddChild("a", "c")

	want := []Edge{
		{From: "a", To: "c", Kind: EdgeChild},
		{From: "a", To: "b", Kind: EdgePartner},
		{From: "b", To: "a", Kind: EdgePartner},
	}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Graph
		wantErr error
	}{
		{
			name: "valid",
			build: func() *Graph {
				g := New()
				_ = g.AddPerson(Person{ID: "f"})
				_ = g.AddPerson(Person{ID: "c"})
				_ = g.AddChild("f", "c")
				return g
			},
		},
		{
			name: "dangling father",
			build: func() *Graph {
				g := New()
				_ = g.AddPerson(Person{ID: "c", FatherID: "ghost"})
				return g
			},
			wantErr: ErrDanglingParent,
		},
		{
			name: "one-way partner",
			build: func() *Graph {
				g := New()
				_ = g.AddPerson(Person{ID: "a"})
				_ = g.AddPerson(Person{ID: "b"})
				_ = g.AddEdge(Edge{From: "a", To: "b", Kind: EdgePartner})
				return g
			},
			wantErr: ErrAsymmetricPartner,
		},
		{
			name: "reference cycle",
			build: func() *Graph {
				g := New()
				_ = g.AddPerson(Person{ID: "a", FatherID: "b"})
				_ = g.AddPerson(Person{ID: "b", FatherID: "a"})
				return g
			},
			wantErr: ErrGraphHasCycle,
		},
		{
			name: "child edge cycle",
			build: func() *Graph {
				g := New()
				_ = g.AddPerson(Person{ID: "a"})
				_ = g.AddPerson(Person{ID: "b"})
				_ = g.AddEdge(Edge{From: "a", To: "b"})
				_ = g.AddEdge(Edge{From: "b", To: "a"})
				return g
			},
			wantErr: ErrGraphHasCycle,
		},
		{
			name: "child edge without reference",
			build: func() *Graph {
				g := New()
				_ = g.AddPerson(Person{ID: "a"})
				_ = g.AddPerson(Person{ID: "b"})
				_ = g.AddEdge(Edge{From: "a", To: "b"})
				return g
			},
			wantErr: ErrOrphanChildEdge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
