// Package layout computes deterministic 2-D positions for a family graph.
//
// # Overview
//
// [Calculate] places every person of a [family.Graph] relative to a focus
// person. Positions are node centers in user units; y grows downward with
// generation, so ancestors sit above descendants.
//
// # Algorithm
//
//  1. Resolve generations relative to the focus (package generation).
//  2. Collect effective roots: people with neither father nor mother
//     recorded. Roots in the focus's component come first, then the rest,
//     each group in ID order.
//  3. Place each root's tree recursively. A family unit - a person plus
//     their same-generation partners - is the atomic horizontal block.
//     Children of the unit (sorted by ID) are laid out left to right and
//     the unit is centered over the first and last child unit centers.
//     A subtree occupies max(unit width, children width).
//  4. Trees are chained left to right separated by TreeMarginNodes node
//     widths. People not reached from any root are placed as extra trees.
//  5. One collision sweep per generation row pushes nodes closer than
//     NodeWidth+PartnerGap apart. The sweep runs once and is not iterated
//     to a fixed point.
//
// # Results
//
// [Result.Status] distinguishes the four outcomes callers must handle:
// [StatusOK], [StatusEmpty] for a nil or empty graph, [StatusNotFound]
// when the focus is absent, and [StatusDegraded] when placement failed
// internally. A degraded result holds a single point for the focus at the
// origin and carries the failure in [Result.Err].
//
// [family.Graph]: github.com/matzehuels/kintree/pkg/core/family.Graph
package layout
