package kinship

import (
	"fmt"
	"slices"
	"strings"
)

// facts is everything a rule may look at.
type facts struct {
	c             *Classifier
	focus, person string
	gen, degree   int
}

// direct reports whether person is in focus's direct line, above or below.
func (f facts) direct() bool { return f.degree == abs(f.gen) }

type rule struct {
	name     string
	match    func(facts) bool
	category Category
	label    func(facts) string
}

func fixed(s string) func(facts) string { return func(facts) string { return s } }

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{
		name:     "self",
		match:    func(f facts) bool { return f.focus == f.person },
		category: Self,
		label:    fixed("self"),
	},
	{
		name:     "partner",
		match:    func(f facts) bool { return slices.Contains(f.c.Partners(f.focus), f.person) },
		category: Partner,
		label:    fixed("partner"),
	},
	{
		name:     "unrelated",
		match:    func(f facts) bool { return f.degree == Unrelated },
		category: Distant,
		label:    fixed("unrelated"),
	},
	{
		name:     "ancestor",
		match:    func(f facts) bool { return f.gen < 0 && f.direct() && f.degree <= 10 },
		category: Parent,
		label:    func(f facts) string { return lineLabel(f.degree, "parent", "grandparent") },
	},
	{
		name:     "distant ancestor",
		match:    func(f facts) bool { return f.gen < 0 && f.direct() },
		category: Distant,
		label:    fixed("distant ancestor"),
	},
	{
		name:     "descendant",
		match:    func(f facts) bool { return f.gen > 0 && f.direct() && f.degree <= 10 },
		category: Child,
		label:    func(f facts) string { return lineLabel(f.degree, "child", "grandchild") },
	},
	{
		name:     "distant descendant",
		match:    func(f facts) bool { return f.gen > 0 && f.direct() },
		category: Distant,
		label:    fixed("distant descendant"),
	},
	{
		name: "sibling",
		match: func(f facts) bool {
			return f.gen == 0 && f.degree == 2 && slices.Contains(f.c.Siblings(f.focus), f.person)
		},
		category: Sibling,
		label:    fixed("sibling"),
	},
	{
		name:     "cousin",
		match:    func(f facts) bool { return f.gen == 0 && f.degree >= 4 && f.degree <= 12 && f.degree%2 == 0 },
		category: Sibling,
		label:    func(f facts) string { return cousinLabel(f.degree/2 - 1) },
	},
	{
		name:     "distant cousin",
		match:    func(f facts) bool { return f.gen == 0 && f.degree > 12 },
		category: Distant,
		label:    fixed("distant cousin"),
	},
	{
		name:     "aunt/uncle",
		match:    func(f facts) bool { return f.gen == -1 && f.degree == 3 },
		category: Extended,
		label:    fixed("aunt/uncle"),
	},
	{
		name:     "great-aunt/uncle",
		match:    func(f facts) bool { return f.gen == -1 && f.degree > 3 && f.degree <= 10 },
		category: Extended,
		label:    func(f facts) string { return removedLabel((f.degree-2)/2, "great-aunt/uncle") },
	},
	{
		name:     "niece/nephew",
		match:    func(f facts) bool { return f.gen == 1 && f.degree == 3 },
		category: Extended,
		label:    fixed("niece/nephew"),
	},
	{
		name:     "great-niece/nephew",
		match:    func(f facts) bool { return f.gen == 1 && f.degree > 3 && f.degree <= 10 },
		category: Extended,
		label:    func(f facts) string { return removedLabel((f.degree-2)/2, "great-niece/nephew") },
	},
	{
		name:     "relative",
		match:    func(f facts) bool { return f.degree < 15 },
		category: Distant,
		label:    func(f facts) string { return fmt.Sprintf("relative, degree %d", f.degree) },
	},
	{
		name:     "distant relative",
		match:    func(facts) bool { return true },
		category: Distant,
		label:    fixed("distant relative"),
	},
}

// firstMatch returns the first rule whose predicate holds for f.
func firstMatch(f facts) rule {
	for _, r := range rules {
		if r.match(f) {
			return r
		}
	}
	return rules[len(rules)-1]
}

func evaluate(f facts) Relationship {
	r := firstMatch(f)
	return Relationship{
		PersonID:   f.person,
		Category:   r.category,
		Label:      r.label(f),
		Generation: f.gen,
		Degree:     f.degree,
	}
}

// lineLabel names a direct-line relative degree hops away:
// parent, grandparent, great-grandparent, great-great-grandparent, then
// great×N-grandparent.
func lineLabel(degree int, one, two string) string {
	switch {
	case degree <= 1:
		return one
	case degree == 2:
		return two
	case degree <= 4:
		return strings.Repeat("great-", degree-2) + two
	default:
		return fmt.Sprintf("great×%d-%s", degree-2, two)
	}
}

func cousinLabel(n int) string {
	switch n {
	case 1:
		return "first cousin"
	case 2:
		return "second cousin"
	default:
		return ordinal(n) + " cousin"
	}
}

func removedLabel(n int, base string) string {
	if n <= 1 {
		return "first cousin once removed"
	}
	return ordinal(n) + " " + base
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RuleNames returns the classification rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}
