package kinship

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/kintree/pkg/core/family"
	"github.com/matzehuels/kintree/pkg/observability"
)

type link3 struct{ parent, child string }

func build(t *testing.T, ids []string, links []link3, partners [][2]string) *family.Graph {
	t.Helper()
	g := family.New()
	for _, id := range ids {
		if err := g.AddPerson(family.Person{ID: id}); err != nil {
			t.Fatalf("AddPerson(%s): %v", id, err)
		}
	}
	for _, l := range links {
		if err := g.AddChild(l.parent, l.child); err != nil {
			t.Fatalf("AddChild(%s, %s): %v", l.parent, l.child, err)
		}
	}
	for _, p := range partners {
		if err := g.AddPartner(p[0], p[1]); err != nil {
			t.Fatalf("AddPartner(%s, %s): %v", p[0], p[1], err)
		}
	}
	return g
}

// cousins builds a grandparent with two children, each with one child:
//
//	     gp
//	   /    \
//	  p1    p2
//	  |      |
//	  d      e
func cousins(t *testing.T) *family.Graph {
	return build(t,
		[]string{"gp", "p1", "p2", "d", "e"},
		[]link3{{"gp", "p1"}, {"gp", "p2"}, {"p1", "d"}, {"p2", "e"}},
		nil,
	)
}

func TestClassifyDirectLine(t *testing.T) {
	g := build(t, []string{"a", "f", "g"}, []link3{{"f", "a"}, {"g", "f"}}, nil)
	c := New(g)

	tests := []struct {
		focus, person string
		category      Category
		label         string
		gen, degree   int
	}{
		{"a", "f", Parent, "parent", -1, 1},
		{"a", "g", Parent, "grandparent", -2, 2},
		{"g", "a", Child, "grandchild", 2, 2},
		{"f", "a", Child, "child", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.focus+"->"+tt.person, func(t *testing.T) {
			r := c.Classify(tt.focus, tt.person)
			if r.Category != tt.category || r.Label != tt.label {
				t.Errorf("Classify() = (%s, %q), want (%s, %q)", r.Category, r.Label, tt.category, tt.label)
			}
			if r.Generation != tt.gen || r.Degree != tt.degree {
				t.Errorf("gen/degree = %d/%d, want %d/%d", r.Generation, r.Degree, tt.gen, tt.degree)
			}
			if r.PersonID != tt.person {
				t.Errorf("PersonID = %q, want %q", r.PersonID, tt.person)
			}
		})
	}

	if role, ok := c.Parent("a", "f"); !ok || role != family.Father {
		t.Errorf("Parent(a, f) = (%v, %v), want (father, true)", role, ok)
	}
	if _, ok := c.Parent("a", "g"); ok {
		t.Error("Parent(a, g) should be false for a grandparent")
	}
}

func TestClassifySiblings(t *testing.T) {
	g := build(t,
		[]string{"x", "y", "b", "c"},
		[]link3{{"x", "b"}, {"y", "b"}, {"x", "c"}, {"y", "c"}},
		nil,
	)
	c := New(g)
	r := c.Classify("b", "c")
	if r.Category != Sibling || r.Degree != 2 || r.Generation != 0 {
		t.Errorf("Classify(b, c) = %+v, want sibling at degree 2", r)
	}
	if got := c.Siblings("b"); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Siblings(b) = %v, want [c]", got)
	}
	if got := c.Partners("x"); !slices.Equal(got, []string{"y"}) {
		t.Errorf("Partners(x) = %v, want inferred co-parent [y]", got)
	}
	if got := c.Children("y"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Children(y) = %v, want [b c]", got)
	}
}

func TestSiblingsSingleParent(t *testing.T) {
	g := build(t,
		[]string{"m", "x", "y", "a", "b", "z"},
		[]link3{{"m", "a"}, {"m", "b"}, {"x", "z"}, {"y", "z"}},
		nil,
	)
	c := New(g)
	if got := c.Siblings("a"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Siblings(a) = %v, want [b]", got)
	}
	if got := c.Siblings("m"); got != nil {
		t.Errorf("Siblings(m) = %v, want nil for a root", got)
	}
}

func TestClassifyPartnerPrecedence(t *testing.T) {
	g := cousins(t)
	c := New(g)

	if r := c.Classify("d", "e"); r.Category != Sibling || r.Label != "first cousin" || r.Degree != 4 {
		t.Fatalf("Classify(d, e) before partnering = %+v, want first cousin at degree 4", r)
	}

	if err := g.AddPartner("d", "e"); err != nil {
		t.Fatal(err)
	}
	c = New(g)
	r := c.Classify("d", "e")
	if r.Category != Partner {
		t.Errorf("Classify(d, e) = %s, want partner", r.Category)
	}
	if r.Degree != 4 {
		t.Errorf("Degree = %d, want blood degree 4 kept on the relationship", r.Degree)
	}
}

func TestClassifyCollateral(t *testing.T) {
	c := New(cousins(t))

	tests := []struct {
		focus, person string
		category      Category
		label         string
		gen           int
	}{
		{"d", "p2", Extended, "aunt/uncle", -1},
		{"p2", "d", Extended, "niece/nephew", 1},
		{"d", "e", Sibling, "first cousin", 0},
		{"p1", "p2", Sibling, "sibling", 0},
	}
	for _, tt := range tests {
		r := c.Classify(tt.focus, tt.person)
		if r.Category != tt.category || r.Label != tt.label || r.Generation != tt.gen {
			t.Errorf("Classify(%s, %s) = %+v, want (%s, %q, gen %d)",
				tt.focus, tt.person, r, tt.category, tt.label, tt.gen)
		}
	}
}

// twoLines builds a root with two twelve-generation father lines,
// a1..a12 and b1..b12, a partner pa1 for a1, and an unconnected z:
//
//	        root
//	       /    \
//	     a1      b1
//	     |        |
//	    ...      ...
//	    a12      b12
func twoLines(t *testing.T) *family.Graph {
	ids := []string{"root", "pa1", "z"}
	var links []link3
	for i := 1; i <= 12; i++ {
		for _, line := range []string{"a", "b"} {
			id := fmt.Sprintf("%s%d", line, i)
			parent := fmt.Sprintf("%s%d", line, i-1)
			if i == 1 {
				parent = "root"
			}
			ids = append(ids, id)
			links = append(links, link3{parent, id})
		}
	}
	return build(t, ids, links, [][2]string{{"a1", "pa1"}})
}

func TestClassifyRuleTable(t *testing.T) {
	c := New(twoLines(t))

	tests := []struct {
		focus, person string
		rule          string
		category      Category
		label         string
		gen, degree   int
	}{
		{"a1", "a1", "self", Self, "self", 0, 0},
		{"a1", "pa1", "partner", Partner, "partner", Unrelated, Unrelated},
		{"a1", "z", "unrelated", Distant, "unrelated", Unrelated, Unrelated},
		{"a3", "a1", "ancestor", Parent, "grandparent", -2, 2},
		{"a11", "root", "distant ancestor", Distant, "distant ancestor", -11, 11},
		{"a1", "a2", "descendant", Child, "child", 1, 1},
		{"root", "a11", "distant descendant", Distant, "distant descendant", 11, 11},
		{"a1", "b1", "sibling", Sibling, "sibling", 0, 2},
		{"a2", "b2", "cousin", Sibling, "first cousin", 0, 4},
		{"a3", "b3", "cousin", Sibling, "second cousin", 0, 6},
		{"a4", "b4", "cousin", Sibling, "3rd cousin", 0, 8},
		{"a5", "b5", "cousin", Sibling, "4th cousin", 0, 10},
		{"a6", "b6", "cousin", Sibling, "5th cousin", 0, 12},
		{"a7", "b7", "distant cousin", Distant, "distant cousin", 0, 14},
		{"a2", "b1", "aunt/uncle", Extended, "aunt/uncle", -1, 3},
		{"a3", "b2", "great-aunt/uncle", Extended, "first cousin once removed", -1, 5},
		{"a4", "b3", "great-aunt/uncle", Extended, "2nd great-aunt/uncle", -1, 7},
		{"b1", "a2", "niece/nephew", Extended, "niece/nephew", 1, 3},
		{"b2", "a3", "great-niece/nephew", Extended, "first cousin once removed", 1, 5},
		{"b3", "a4", "great-niece/nephew", Extended, "2nd great-niece/nephew", 1, 7},
		{"a3", "b1", "relative", Distant, "relative, degree 4", -2, 4},
		{"b1", "a3", "relative", Distant, "relative, degree 4", 2, 4},
		{"a8", "b7", "distant relative", Distant, "distant relative", -1, 15},
	}

	covered := make(map[string]bool)
	for _, tt := range tests {
		t.Run(tt.focus+"->"+tt.person, func(t *testing.T) {
			if got := firstMatch(c.factsOf(tt.focus, tt.person)).name; got != tt.rule {
				t.Errorf("rule = %q, want %q", got, tt.rule)
			}
			r := c.Classify(tt.focus, tt.person)
			if r.Category != tt.category || r.Label != tt.label {
				t.Errorf("Classify() = (%s, %q), want (%s, %q)", r.Category, r.Label, tt.category, tt.label)
			}
			if tt.rule != "partner" && tt.rule != "self" && (r.Generation != tt.gen || r.Degree != tt.degree) {
				t.Errorf("gen/degree = %d/%d, want %d/%d", r.Generation, r.Degree, tt.gen, tt.degree)
			}
		})
		covered[tt.rule] = true
	}
	for _, name := range RuleNames() {
		if !covered[name] {
			t.Errorf("rule %q has no case", name)
		}
	}
}

func TestClassifySelf(t *testing.T) {
	c := New(cousins(t))
	for _, id := range []string{"gp", "p1", "d", "ghost"} {
		if r := c.Classify(id, id); r.Category != Self || r.Degree != 0 {
			t.Errorf("Classify(%s, %s) = %+v, want self", id, id, r)
		}
	}
}

func TestClassifyUnrelated(t *testing.T) {
	g := cousins(t)
	_ = g.AddPerson(family.Person{ID: "lone"})
	c := New(g)

	r := c.Classify("d", "lone")
	if r.Category != Distant || r.Label != "unrelated" || r.Related() {
		t.Errorf("Classify(d, lone) = %+v, want unrelated", r)
	}
	if c.Degree("ghost", "d") != Unrelated || c.GenerationLevel("d", "ghost") != Unrelated {
		t.Error("unknown IDs should be unrelated")
	}
	if got := c.Partners("ghost"); len(got) != 0 {
		t.Errorf("Partners(ghost) = %v, want empty", got)
	}
}

func TestAncestors(t *testing.T) {
	c := New(cousins(t))
	got := c.Ancestors("d")
	if len(got) != 2 || got["p1"] != 1 || got["gp"] != 2 {
		t.Errorf("Ancestors(d) = %v, want map[gp:2 p1:1]", got)
	}
	got["p1"] = 99
	if c.Ancestors("d")["p1"] != 1 {
		t.Error("Ancestors should return a copy")
	}
	if len(c.Ancestors("gp")) != 0 {
		t.Error("a root has no ancestors")
	}
}

func TestAncestorsCycleTerminates(t *testing.T) {
	g := family.New()
	_ = g.AddPerson(family.Person{ID: "a", FatherID: "b"})
	_ = g.AddPerson(family.Person{ID: "b", FatherID: "a"})
	c := New(g)

	if got := c.Ancestors("a"); len(got) != 1 || got["b"] != 1 {
		t.Errorf("Ancestors(a) = %v, want map[b:1]", got)
	}
	if d := c.Degree("a", "b"); d != 1 {
		t.Errorf("Degree(a, b) = %d, want 1 (first path found)", d)
	}
}

func TestCommonAncestorTieBreak(t *testing.T) {
	// Two full siblings share both parents at equal depth; the lower ID wins
	// but either choice yields the same generation and degree.
	a, ok := nearestCommon(map[string]int{"zed": 1, "amy": 1}, map[string]int{"zed": 1, "amy": 1})
	if !ok || a != "amy" {
		t.Errorf("nearestCommon() = %q, want amy", a)
	}
	a, _ = nearestCommon(map[string]int{"zed": 1, "amy": 2}, map[string]int{"zed": 1, "amy": 1})
	if a != "zed" {
		t.Errorf("nearestCommon() = %q, want zed (smaller depth sum)", a)
	}
	if _, ok := nearestCommon(map[string]int{"x": 1}, map[string]int{"y": 1}); ok {
		t.Error("nearestCommon() should report no common ancestor")
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{lineLabel(1, "parent", "grandparent"), "parent"},
		{lineLabel(2, "parent", "grandparent"), "grandparent"},
		{lineLabel(3, "parent", "grandparent"), "great-grandparent"},
		{lineLabel(4, "parent", "grandparent"), "great-great-grandparent"},
		{lineLabel(7, "child", "grandchild"), "great×5-grandchild"},
		{cousinLabel(1), "first cousin"},
		{cousinLabel(2), "second cousin"},
		{cousinLabel(3), "3rd cousin"},
		{cousinLabel(5), "5th cousin"},
		{removedLabel(1, "great-aunt/uncle"), "first cousin once removed"},
		{removedLabel(2, "great-aunt/uncle"), "2nd great-aunt/uncle"},
		{ordinal(11), "11th"},
		{ordinal(21), "21st"},
		{ordinal(112), "112th"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("label = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestRuleOrder(t *testing.T) {
	names := RuleNames()
	if names[0] != "self" || names[1] != "partner" {
		t.Fatalf("first rules = %v, want self then partner", names[:2])
	}
	idx := func(name string) int { return slices.Index(names, name) }
	for _, later := range []string{"ancestor", "descendant", "sibling", "cousin", "aunt/uncle", "relative"} {
		if idx(later) < idx("partner") {
			t.Errorf("rule %q must come after partner", later)
		}
	}
	if names[len(names)-1] != "distant relative" {
		t.Errorf("last rule = %q, want the catch-all", names[len(names)-1])
	}
}

func TestClassifyAll(t *testing.T) {
	c := New(cousins(t))
	all := c.ClassifyAll("d")
	if len(all) != 5 {
		t.Fatalf("ClassifyAll() returned %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].PersonID >= all[i].PersonID {
			t.Fatalf("ClassifyAll() not sorted by ID: %v", all)
		}
	}
}

func TestStale(t *testing.T) {
	g := cousins(t)
	c := New(g)
	if c.Stale() {
		t.Fatal("fresh classifier reported stale")
	}
	_ = g.AddPerson(family.Person{ID: "new"})
	if !c.Stale() {
		t.Error("classifier should be stale after a mutation")
	}
}

type countingHooks struct {
	mu           sync.Mutex
	hits, misses map[string]int
}

func (h *countingHooks) OnCacheHit(kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[kind]++
}

func (h *countingHooks) OnCacheMiss(kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses[kind]++
}

func TestClassifyCache(t *testing.T) {
	hooks := &countingHooks{hits: map[string]int{}, misses: map[string]int{}}
	observability.SetClassifierHooks(hooks)
	defer observability.Reset()

	c := New(cousins(t))
	first := c.Classify("d", "e")
	second := c.Classify("d", "e")
	if first != second {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	if hooks.misses["relationship"] != 1 || hooks.hits["relationship"] != 1 {
		t.Errorf("relationship hits/misses = %d/%d, want 1/1",
			hooks.hits["relationship"], hooks.misses["relationship"])
	}
}

func TestClassifyConcurrent(t *testing.T) {
	c := New(cousins(t))
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range []string{"gp", "p1", "p2", "d", "e"} {
				c.Classify("d", p)
			}
		}()
	}
	wg.Wait()
	if r := c.Classify("d", "gp"); r.Label != "grandparent" {
		t.Errorf("Classify(d, gp) = %q, want grandparent", r.Label)
	}
}

// randomPedigree derives a graph from picks: person i > 0 gets father
// picks[i] mod i when the pick is not negative, and a mother when the pick
// is a multiple of three and names a different earlier person.
func randomPedigree(picks []int) *family.Graph {
	g := family.New()
	id := func(i int) string { return fmt.Sprintf("p%02d", i) }
	for i := range picks {
		_ = g.AddPerson(family.Person{ID: id(i)})
	}
	for i := 1; i < len(picks); i++ {
		v := picks[i]
		if v < 0 {
			continue
		}
		father := v % i
		_ = g.SetParent(id(i), id(father), family.Father)
		if mother := (v / 7) % i; v%3 == 0 && mother != father {
			_ = g.SetParent(id(i), id(mother), family.Mother)
		}
	}
	return g
}

func TestKinshipProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	parameters.MaxSize = 25

	properties := gopter.NewProperties(parameters)

	properties.Property("degree is symmetric", prop.ForAll(
		func(picks []int) bool {
			g := randomPedigree(picks)
			c := New(g)
			ids := g.IDs()
			for _, a := range ids {
				for _, b := range ids {
					if c.Degree(a, b) != c.Degree(b, a) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-3, 200)),
	))

	properties.Property("generation is antisymmetric for relatives", prop.ForAll(
		func(picks []int) bool {
			g := randomPedigree(picks)
			c := New(g)
			ids := g.IDs()
			for _, a := range ids {
				for _, b := range ids {
					if c.Degree(a, b) == Unrelated {
						continue
					}
					if c.GenerationLevel(a, b) != -c.GenerationLevel(b, a) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-3, 200)),
	))

	properties.Property("classify(p, p) is self", prop.ForAll(
		func(picks []int) bool {
			g := randomPedigree(picks)
			c := New(g)
			for _, id := range g.IDs() {
				if c.Classify(id, id).Category != Self {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-3, 200)),
	))

	properties.TestingRun(t)
}
