// Package family provides the read-mostly genealogical graph consumed by the
// layout and kinship packages.
//
// # Overview
//
// A [Graph] holds people keyed by string ID. Each [Person] may record a
// father and a mother by ID; these references are weak lookups and never
// imply ownership. Two edge kinds connect people:
//
//   - [EdgeChild]: directed parent → child
//   - [EdgePartner]: always stored as a symmetric pair
//
// # Basic Usage
//
//	g := family.New()
//	_ = g.AddPerson(family.Person{ID: "adam", Label: "Adam"})
//	_ = g.AddPerson(family.Person{ID: "eve", Label: "Eve"})
//	_ = g.AddPerson(family.Person{ID: "seth", Label: "Seth"})
//	_ = g.AddPartner("adam", "eve")
//	_ = g.AddChild("adam", "seth") // adam becomes seth's father
//	_ = g.AddChild("eve", "seth")  // eve becomes seth's mother
//
// # Cycles
//
// Parent links that would make a person their own ancestor are rejected by
// [Graph.SetParent] and [Graph.AddChild] with [ErrParentCycle]. Graphs built
// from imported data should be checked with [Graph.Validate].
//
// # Versions
//
// Every mutation assigns the graph a fresh [Graph.Version]. Consumers that
// memoize results against a graph (such as kinship classifiers) record the
// version and rebuild when it changes.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Concurrent reads of a
// graph that is no longer being modified are safe.
package family
