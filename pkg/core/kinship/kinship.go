package kinship

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/kintree/pkg/core/family"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Unrelated is the generation and degree reported for two people without a
// common ancestor.
const Unrelated = 999

// Category groups relationships for display.
type Category string

const (
	Self     Category = "self"
	Partner  Category = "partner"
	Parent   Category = "parent" // direct ancestors
	Child    Category = "child"  // direct descendants
	Sibling  Category = "sibling"
	Extended Category = "extended"
	Distant  Category = "distant"
)

// Relationship is the classification of PersonID relative to a focus.
type Relationship struct {
	PersonID   string   `json:"person_id"`
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	Generation int      `json:"generation"`
	Degree     int      `json:"degree"`
}

// Related reports whether the two people share an ancestor, or are the
// same person, or one descends from the other.
func (r Relationship) Related() bool { return r.Degree != Unrelated }

type pair struct{ focus, person string }

type link struct{ gen, degree int }

// Classifier computes relationships over one graph snapshot. It is safe
// for concurrent use.
type Classifier struct {
	g       *family.Graph
	version string

	mu        sync.Mutex
	ancestors map[string]map[string]int
	links     map[pair]link
	relations map[pair]Relationship
}

// New returns a classifier bound to g.
func New(g *family.Graph) *Classifier {
	if g == nil {
		g = family.New()
	}
	return &Classifier{
		g:         g,
		version:   g.Version(),
		ancestors: make(map[string]map[string]int),
		links:     make(map[pair]link),
		relations: make(map[pair]Relationship),
	}
}

// Stale reports whether the graph changed since the classifier was built.
// A stale classifier keeps answering from the old snapshot's cache.
func (c *Classifier) Stale() bool { return c.g.Version() != c.version }

// Ancestors returns every ancestor of id mapped to its depth in parent
// hops, found breadth-first through father then mother references. The
// start person is excluded. The returned map is a copy.
func (c *Classifier) Ancestors(id string) map[string]int {
	return maps.Clone(c.ancestorsOf(id))
}

func (c *Classifier) ancestorsOf(id string) map[string]int {
	c.mu.Lock()
	cached, ok := c.ancestors[id]
	c.mu.Unlock()
	if ok {
		observability.Classifier().OnCacheHit("ancestors")
		return cached
	}
	observability.Classifier().OnCacheMiss("ancestors")

	depths := make(map[string]int)
	seen := map[string]bool{id: true}
	type item struct {
		id    string
		depth int
	}
	queue := []item{{id, 0}}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, p := range c.g.Parents(curr.id) {
			if seen[p] {
				continue
			}
			seen[p] = true
			depths[p] = curr.depth + 1
			queue = append(queue, item{p, curr.depth + 1})
		}
	}

	c.mu.Lock()
	c.ancestors[id] = depths
	c.mu.Unlock()
	return depths
}

// GenerationLevel returns how many generations person sits below focus.
// Ancestors are negative, descendants positive. Collateral relatives are
// measured through their nearest common ancestor.
func (c *Classifier) GenerationLevel(focus, person string) int {
	return c.linkOf(focus, person).gen
}

// Degree returns the number of parent hops separating focus and person
// through their nearest common ancestor, or the direct depth when one is
// an ancestor of the other. Degree(a, b) == Degree(b, a).
func (c *Classifier) Degree(focus, person string) int {
	return c.linkOf(focus, person).degree
}

func (c *Classifier) linkOf(focus, person string) link {
	if focus == person {
		return link{}
	}
	key := pair{focus, person}
	c.mu.Lock()
	cached, ok := c.links[key]
	c.mu.Unlock()
	if ok {
		observability.Classifier().OnCacheHit("link")
		return cached
	}
	observability.Classifier().OnCacheMiss("link")

	l := c.computeLink(focus, person)
	c.mu.Lock()
	c.links[key] = l
	c.mu.Unlock()
	return l
}

func (c *Classifier) computeLink(focus, person string) link {
	if !c.g.Has(focus) || !c.g.Has(person) {
		return link{Unrelated, Unrelated}
	}
	fa := c.ancestorsOf(focus)
	pa := c.ancestorsOf(person)

	if d, ok := fa[person]; ok {
		return link{-d, d}
	}
	if d, ok := pa[focus]; ok {
		return link{d, d}
	}

	anc, ok := nearestCommon(fa, pa)
	if !ok {
		return link{Unrelated, Unrelated}
	}
	return link{pa[anc] - fa[anc], fa[anc] + pa[anc]}
}

// nearestCommon picks the common ancestor with the smallest depth sum,
// breaking ties by lowest ID.
func nearestCommon(a, b map[string]int) (string, bool) {
	best, bestSum, found := "", 0, false
	for id, da := range a {
		db, ok := b[id]
		if !ok {
			continue
		}
		sum := da + db
		if !found || sum < bestSum || (sum == bestSum && cmp.Less(id, best)) {
			best, bestSum, found = id, sum, true
		}
	}
	return best, found
}

// Siblings returns the people sharing both recorded parents of id, or the
// single recorded parent when only one is known. Half-siblings are not
// distinguished. The result is sorted.
func (c *Classifier) Siblings(id string) []string {
	p, ok := c.g.Person(id)
	if !ok || !p.HasParents() {
		return nil
	}
	var out []string
	for _, other := range c.g.People() {
		if other.ID == id {
			continue
		}
		switch {
		case p.FatherID != "" && p.MotherID != "":
			if other.FatherID == p.FatherID && other.MotherID == p.MotherID {
				out = append(out, other.ID)
			}
		case p.FatherID != "":
			if other.FatherID == p.FatherID {
				out = append(out, other.ID)
			}
		default:
			if other.MotherID == p.MotherID {
				out = append(out, other.ID)
			}
		}
	}
	return out
}

// Partners returns explicit partners of id together with inferred
// co-parents, sorted.
func (c *Classifier) Partners(id string) []string {
	set := make(map[string]bool)
	for _, p := range c.g.Partners(id) {
		set[p] = true
	}
	for _, child := range c.Children(id) {
		kid, _ := c.g.Person(child)
		for _, parent := range []string{kid.FatherID, kid.MotherID} {
			if parent != "" && parent != id {
				set[parent] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// Children returns everyone recording id as father or mother, sorted.
func (c *Classifier) Children(id string) []string {
	if !c.g.Has(id) {
		return nil
	}
	var out []string
	for _, p := range c.g.People() {
		if p.FatherID == id || p.MotherID == id {
			out = append(out, p.ID)
		}
	}
	return out
}

// Classify returns the relationship of person to focus. Unknown IDs are
// classified as unrelated; classifying a person against themselves always
// yields Self.
func (c *Classifier) Classify(focus, person string) Relationship {
	key := pair{focus, person}
	c.mu.Lock()
	cached, ok := c.relations[key]
	c.mu.Unlock()
	if ok {
		observability.Classifier().OnCacheHit("relationship")
		return cached
	}
	observability.Classifier().OnCacheMiss("relationship")

	r := evaluate(c.factsOf(focus, person))

	c.mu.Lock()
	c.relations[key] = r
	c.mu.Unlock()
	return r
}

func (c *Classifier) factsOf(focus, person string) facts {
	l := c.linkOf(focus, person)
	return facts{c: c, focus: focus, person: person, gen: l.gen, degree: l.degree}
}

// ClassifyAll classifies every person in the graph against focus, in ID
// order.
func (c *Classifier) ClassifyAll(focus string) []Relationship {
	ids := c.g.IDs()
	out := make([]Relationship, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Classify(focus, id))
	}
	return out
}

// Parent reports which recorded slot person fills for focus when person is
// focus's father or mother.
func (c *Classifier) Parent(focus, person string) (family.Role, bool) {
	p, ok := c.g.Person(focus)
	if !ok || person == "" {
		return 0, false
	}
	switch person {
	case p.FatherID:
		return family.Father, true
	case p.MotherID:
		return family.Mother, true
	}
	return 0, false
}
