// Package pkg provides the libraries behind kintree.
//
// # Overview
//
// Kintree lays out genealogical graphs around a focus person and labels how
// everyone is related to that person. The pkg directory is organized into
// three areas:
//
//  1. [core] - Pure algorithms over an in-memory family graph
//  2. [graph] - Interchange formats for graphs and computed scenes
//  3. [pipeline] - Orchestration (load → layout → classify) with caching
//
// Supporting packages: [config] (TOML settings), [cache] (scene cache),
// [errors] (coded errors), [observability] (hooks) and [buildinfo].
//
// # Architecture
//
// The typical data flow through kintree:
//
//	JSON/TOML/YAML graph file
//	         ↓
//	    [graph] package (decode into a family graph)
//	         ↓
//	    [core/family] package (graph structure + validation)
//	         ↓
//	    [core/layout] + [core/kinship] (positions + relationships)
//	         ↓
//	    [core/palette] (colors)
//	         ↓
//	    [graph.Scene] JSON output
//
// # Quick Start
//
// Lay out a small family around one person:
//
//	import (
//	    "github.com/matzehuels/kintree/pkg/core/family"
//	    "github.com/matzehuels/kintree/pkg/core/kinship"
//	    "github.com/matzehuels/kintree/pkg/core/layout"
//	)
//
//	g := family.New()
//	_ = g.AddPerson(family.Person{ID: "adam"})
//	_ = g.AddPerson(family.Person{ID: "seth"})
//	_ = g.AddChild("adam", "seth")
//
//	res := layout.Calculate(g, "seth")
//	rel := kinship.New(g).Classify("seth", "adam") // "parent"
//
// # Core Packages
//
// The core packages never perform I/O and never mutate their input:
//
//   - [core/family]: Person, Edge and Graph types with validation
//   - [core/generation]: Generation offsets relative to a focus
//   - [core/layout]: Family-unit tree layout with collision resolution
//   - [core/kinship]: Ancestor search, degree and relationship labels
//   - [core/palette]: Node and edge colors per relationship
//
// [core]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/core
// [core/family]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/core/family
// [core/generation]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/core/generation
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/core/layout
// [core/kinship]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/core/kinship
// [core/palette]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/core/palette
// [graph]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/graph
// [graph.Scene]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/graph#Scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/buildinfo
package pkg
