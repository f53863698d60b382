package family

import (
	"fmt"
	"slices"
)

// Validate checks the structural integrity of the graph:
//
//  1. Every father/mother reference resolves to a person in the graph
//  2. Every partner edge has its reverse edge
//  3. The parent relation (recorded references and child edges) is acyclic
//  4. Every child edge is backed by the child's father or mother reference
//
// Returns an error wrapping ErrDanglingParent, ErrAsymmetricPartner,
// ErrGraphHasCycle or ErrOrphanChildEdge that names the first offending
// person in ID order.
// Cycle detection runs in O(N+E) time using depth-first search.
func (g *Graph) Validate() error {
	ids := g.IDs()
	for _, id := range ids {
		p := g.people[id]
		if p.FatherID != "" && !g.Has(p.FatherID) {
			return fmt.Errorf("%s: father %s: %w", id, p.FatherID, ErrDanglingParent)
		}
		if p.MotherID != "" && !g.Has(p.MotherID) {
			return fmt.Errorf("%s: mother %s: %w", id, p.MotherID, ErrDanglingParent)
		}
	}
	for _, id := range ids {
		for _, partner := range g.PartnerEdges(id) {
			if !slices.Contains(g.partners[partner], id) {
				return fmt.Errorf("%s -> %s: %w", id, partner, ErrAsymmetricPartner)
			}
		}
	}
	if err := g.detectCycles(ids); err != nil {
		return err
	}
	for _, id := range ids {
		for _, child := range g.Children(id) {
			if c, ok := g.people[child]; ok && c.FatherID != id && c.MotherID != id {
				return fmt.Errorf("%s -> %s: %w", id, child, ErrOrphanChildEdge)
			}
		}
	}
	return nil
}

func (g *Graph) detectCycles(ids []string) error {
	const (
		white = iota
		gray
		black
	)

	down := make(map[string][]string, len(g.people))
	for parent, kids := range g.children {
		down[parent] = append(down[parent], kids...)
	}
	for _, id := range ids {
		for _, parent := range g.Parents(id) {
			down[parent] = append(down[parent], id)
		}
	}

	color := make(map[string]int, len(g.people))
	var cycleAt string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range down[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				cycleAt = child
			}
			if cycleAt != "" {
				return
			}
		}
		color[id] = black
	}

	for _, id := range ids {
		if color[id] == white {
			dfs(id)
			if cycleAt != "" {
				return fmt.Errorf("%s: %w", cycleAt, ErrGraphHasCycle)
			}
		}
	}
	return nil
}
