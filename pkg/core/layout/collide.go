package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/kintree/pkg/core/generation"
)

// resolveCollisions runs a single left-to-right sweep over each generation
// row. When two neighbours are closer than Config.MinSeparation the right
// node and every node after it in the row move right by the deficit plus
// Config.CollisionSlack.
func resolveCollisions(pos map[string]Point, gens map[string]int, cfg Config) {
	rows := generation.Rows(gens, slices.Collect(maps.Keys(pos)))
	minSep := cfg.MinSeparation()
	for _, row := range rows {
		slices.SortFunc(row, func(a, b string) int {
			if c := cmp.Compare(pos[a].X, pos[b].X); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})

		for i := 1; i < len(row); i++ {
			gap := pos[row[i]].X - pos[row[i-1]].X
			if gap >= minSep {
				continue
			}
			push := minSep - gap + cfg.CollisionSlack
			for _, id := range row[i:] {
				p := pos[id]
				p.X += push
				pos[id] = p
			}
		}
	}
}
