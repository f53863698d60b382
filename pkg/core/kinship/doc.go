// Package kinship classifies how two people in a family graph are related.
//
// A [Classifier] is bound to one [family.Graph] snapshot. It answers:
//
//   - [Classifier.Ancestors]: every ancestor of a person with the number of
//     parent hops to reach them.
//   - [Classifier.GenerationLevel]: signed generation difference, negative
//     when the person sits above the focus.
//   - [Classifier.Degree]: total parent hops to the nearest common
//     ancestor. Degree is symmetric.
//   - [Classifier.Classify]: a [Relationship] with a [Category] and an
//     English label such as "grandparent" or "second cousin".
//
// People with no common ancestor get the [Unrelated] sentinel for both
// generation and degree.
//
// # Rules
//
// Classification walks a fixed, ordered rule table and stops at the first
// match. Partner status is checked before any blood relation, so a partner
// who is also a distant cousin is reported as a partner.
//
// # Caching
//
// Ancestor maps, generation/degree pairs and classifications are memoized
// for the life of the classifier. The classifier never observes graph
// mutation: build a new one when the graph changes. [Classifier.Stale]
// reports whether that has happened.
//
// [family.Graph]: github.com/matzehuels/kintree/pkg/core/family.Graph
package kinship
