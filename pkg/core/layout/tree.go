package layout

import (
	"slices"

	"github.com/matzehuels/kintree/pkg/core/family"
	"github.com/matzehuels/kintree/pkg/core/generation"
)

// builder owns the mutable state of one Calculate call. It is passed by
// pointer through the recursion and discarded afterwards.
type builder struct {
	g       *family.Graph
	cfg     Config
	gens    map[string]int
	minGen  int
	visited map[string]bool
	pos     map[string]Point
	placed  []string // placement order, used to shift finished subtrees
	trees   int
}

func newBuilder(g *family.Graph, cfg Config, gens map[string]int) *builder {
	lo, _ := generation.MinMax(gens)
	return &builder{
		g:       g,
		cfg:     cfg,
		gens:    gens,
		minGen:  lo,
		visited: make(map[string]bool, len(gens)),
		pos:     make(map[string]Point, len(gens)),
	}
}

// rootOrder returns the effective roots of g: people with neither father nor
// mother recorded. Roots connected to focus come first; each group is in ID
// order.
func rootOrder(g *family.Graph, focus string) []string {
	comp := generation.Component(g, focus)
	var near, far []string
	for _, p := range g.People() {
		if p.HasParents() {
			continue
		}
		if comp[p.ID] {
			near = append(near, p.ID)
		} else {
			far = append(far, p.ID)
		}
	}
	return append(near, far...)
}

// placeAll lays out one tree per unvisited root, left to right, then places
// any person no root reached (dangling parent references, parent cycles) as
// a tree of its own so every person gets a position.
func (b *builder) placeAll(roots []string) error {
	x := 0.0
	margin := b.cfg.TreeMarginNodes * b.cfg.NodeWidth

	place := func(id string) error {
		if b.visited[id] {
			return nil
		}
		width, _, err := b.placeUnit(id, x, 0)
		if err != nil {
			return err
		}
		b.trees++
		x += width + margin
		return nil
	}

	for _, id := range roots {
		if err := place(id); err != nil {
			return err
		}
	}
	for _, id := range b.g.IDs() {
		if err := place(id); err != nil {
			return err
		}
	}
	return nil
}

// placeUnit positions the family unit of id and all its unvisited
// descendants starting at offset. It returns the horizontal space the
// subtree occupies and the x center of the unit itself.
func (b *builder) placeUnit(id string, offset float64, depth int) (width, center float64, err error) {
	if b.visited[id] {
		return 0, 0, nil
	}
	if depth > b.cfg.MaxDepth {
		return 0, 0, ErrDepthExceeded
	}

	gen := b.gens[id]
	unit := []string{id}
	for _, p := range b.g.Partners(id) {
		if !b.visited[p] && b.gens[p] == gen {
			unit = append(unit, p)
		}
	}
	for _, m := range unit {
		b.visited[m] = true
	}

	var kids []string
	for _, m := range unit {
		for _, c := range b.g.Children(m) {
			if !b.visited[c] && !slices.Contains(kids, c) {
				kids = append(kids, c)
			}
		}
	}
	slices.Sort(kids)

	unitWidth := b.cfg.unitWidth(len(unit))
	y := float64(gen-b.minGen) * b.cfg.RowHeight()

	mark := len(b.placed)
	var centers []float64
	childX := offset
	childrenWidth := 0.0
	for _, c := range kids {
		w, cx, err := b.placeUnit(c, childX, depth+1)
		if err != nil {
			return 0, 0, err
		}
		if w <= 0 {
			continue
		}
		centers = append(centers, cx)
		childX += w + b.cfg.HGap
		childrenWidth += w + b.cfg.HGap
	}
	if childrenWidth > 0 {
		childrenWidth -= b.cfg.HGap
	}

	if len(centers) == 0 {
		b.placeRow(unit, offset, y)
		return unitWidth, offset + unitWidth/2, nil
	}

	center = (centers[0] + centers[len(centers)-1]) / 2
	start := center - unitWidth/2
	delta := 0.0
	if start < offset {
		// The unit is wider than its children allow: shift the children so
		// the unit starts at offset and stays centered above them.
		delta = offset - start
		b.shift(b.placed[mark:], delta)
		center += delta
		start = offset
	}
	b.placeRow(unit, start, y)
	return max(unitWidth, childrenWidth+delta, start+unitWidth-offset), center, nil
}

func (b *builder) placeRow(unit []string, start, y float64) {
	x := start
	for _, m := range unit {
		b.pos[m] = Point{X: x + b.cfg.NodeWidth/2, Y: y}
		b.placed = append(b.placed, m)
		x += b.cfg.NodeWidth + b.cfg.PartnerGap
	}
}

func (b *builder) shift(ids []string, dx float64) {
	for _, id := range ids {
		p := b.pos[id]
		p.X += dx
		b.pos[id] = p
	}
}
