// Package palette maps relationship classifications to display colors.
//
// Colors are pure functions of [kinship.Relationship] values; the package
// never looks at the graph. Node styles fade toward a floor intensity as the
// degree of relationship grows, using fixed literal colors for the first
// one or two tiers of every category.
//
// [kinship.Relationship]: github.com/matzehuels/kintree/pkg/core/kinship.Relationship
package palette

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/core/kinship"
)

// NodeStyle is the fill, border and border width of one person's node.
type NodeStyle struct {
	Fill        string `json:"fill"`
	Border      string `json:"border"`
	StrokeWidth int    `json:"stroke_width"`
}

// Edge colors, also used as the border of the matching first-tier node.
const (
	ParentColor   = "#4169E1"
	ChildColor    = "#228B22"
	PartnerColor  = "#FF1493"
	SiblingColor  = "#8B008B"
	ExtendedColor = "#FF8C00"
	DefaultColor  = "#9696B4"
)

// Node returns the style for r.
func Node(r kinship.Relationship) NodeStyle {
	d := r.Degree
	switch r.Category {
	case kinship.Self:
		return NodeStyle{"#FFD700", "#000000", 3}

	case kinship.Parent:
		switch d {
		case 1:
			return NodeStyle{"#87CEEB", ParentColor, 2}
		case 2:
			return NodeStyle{"#B0E0E6", "#5F9EA0", 2}
		}
		return NodeStyle{rgb(fade(200, 10, 135, d), 206, 235), "#778899", 1}

	case kinship.Child:
		switch d {
		case 1:
			return NodeStyle{"#98FB98", ChildColor, 2}
		case 2:
			return NodeStyle{"#90EE90", "#32CD32", 2}
		}
		i := fade(250, 15, 144, d)
		return NodeStyle{rgb(i, 238, i), "#6B8E23", 1}

	case kinship.Partner:
		return NodeStyle{"#FFB6C1", PartnerColor, 2}

	case kinship.Sibling:
		switch d {
		case 2:
			return NodeStyle{"#DDA0DD", SiblingColor, 2}
		case 4:
			return NodeStyle{"#D8BFD8", "#9370DB", 2}
		}
		return NodeStyle{"#E6E6FA", "#9932CC", 1}

	case kinship.Extended:
		if d <= 3 {
			return NodeStyle{"#FFD700", ExtendedColor, 2}
		}
		return NodeStyle{"#FFDAB9", "#CD853F", 1}
	}

	// distant
	if !r.Related() || d >= 15 {
		return NodeStyle{"#808080", "#FF0000", 2}
	}
	i := fade(255, 5, 200, d)
	return NodeStyle{rgb(i, i, i), "#696969", 1}
}

// Edge returns the color of the line between a and b as seen from focus.
// When either endpoint is the focus the other endpoint's category decides;
// otherwise the first matching category pair wins.
func Edge(focus string, a, b kinship.Relationship) string {
	switch focus {
	case a.PersonID:
		return categoryColor(b.Category)
	case b.PersonID:
		return categoryColor(a.Category)
	}

	both := func(c kinship.Category) bool { return a.Category == c && b.Category == c }
	either := func(c kinship.Category) bool { return a.Category == c || b.Category == c }

	switch {
	case both(kinship.Parent):
		// two ancestors of the focus are usually a couple
		return PartnerColor
	case either(kinship.Parent) && either(kinship.Child):
		return ParentColor
	case both(kinship.Sibling):
		return SiblingColor
	case both(kinship.Child):
		return ChildColor
	case either(kinship.Partner):
		return PartnerColor
	case either(kinship.Extended):
		return ExtendedColor
	}
	return DefaultColor
}

func categoryColor(c kinship.Category) string {
	switch c {
	case kinship.Parent:
		return ParentColor
	case kinship.Child:
		return ChildColor
	case kinship.Partner:
		return PartnerColor
	case kinship.Sibling:
		return SiblingColor
	case kinship.Extended:
		return ExtendedColor
	}
	return DefaultColor
}

// fade returns base - degree*step, never below floor.
func fade(base, step, floor, degree int) int {
	return max(floor, base-degree*step)
}

func rgb(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
