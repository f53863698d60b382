// Package generation assigns every person in a family graph a signed
// generation number relative to a focus person.
//
// Generation 0 is the focus. Following a parent link decreases the number by
// one, a child link increases it by one, and a partner link (explicit or an
// inferred co-parent) keeps it equal. People not reachable from the focus are
// assigned 0, which collapses disconnected families onto the focus row until
// the layout engine places their trees separately.
package generation

import "github.com/matzehuels/kintree/pkg/core/family"

// Resolve runs a breadth-first traversal from focus and returns the
// generation of every person in g. The second result is false when g is nil
// or focus is not in g.
//
// Neighbors are visited in a fixed order (father, mother, children by ID,
// partners by ID), so the first path to reach a person - and therefore its
// generation - is deterministic even for graphs with inconsistent links.
//
// Time complexity is O(V + E).
func Resolve(g *family.Graph, focus string) (map[string]int, bool) {
	if g == nil || !g.Has(focus) {
		return nil, false
	}

	gens := make(map[string]int, g.PersonCount())
	gens[focus] = 0
	queue := []string{focus}

	visit := func(id string, gen int) {
		if _, seen := gens[id]; seen {
			return
		}
		gens[id] = gen
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		gen := gens[curr]

		for _, p := range g.Parents(curr) {
			visit(p, gen-1)
		}
		for _, c := range g.Children(curr) {
			visit(c, gen+1)
		}
		for _, p := range g.Partners(curr) {
			visit(p, gen)
		}
	}

	for _, id := range g.IDs() {
		if _, ok := gens[id]; !ok {
			gens[id] = 0
		}
	}
	return gens, true
}

// MinMax returns the smallest and largest generation in gens.
// Both are 0 for an empty map.
func MinMax(gens map[string]int) (lo, hi int) {
	first := true
	for _, g := range gens {
		if first {
			lo, hi = g, g
			first = false
			continue
		}
		lo = min(lo, g)
		hi = max(hi, g)
	}
	return lo, hi
}

// Rows groups person IDs by generation. IDs within a row keep the order in
// which they appear in ids.
func Rows(gens map[string]int, ids []string) map[int][]string {
	rows := make(map[int][]string)
	for _, id := range ids {
		if gen, ok := gens[id]; ok {
			rows[gen] = append(rows[gen], id)
		}
	}
	return rows
}

// Component returns the set of people reachable from focus through any mix
// of parent, child and partner links, focus included. It returns nil when
// focus is not in g.
func Component(g *family.Graph, focus string) map[string]bool {
	if g == nil || !g.Has(focus) {
		return nil
	}
	seen := map[string]bool{focus: true}
	queue := []string{focus}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, group := range [][]string{g.Parents(curr), g.Children(curr), g.Partners(curr)} {
			for _, id := range group {
				if !seen[id] {
					seen[id] = true
					queue = append(queue, id)
				}
			}
		}
	}
	return seen
}
