// Package graph provides serialization types for family graphs and scenes.
//
// This package defines the interchange format for kintree's graph data, used
// for input files and for the positioned, colored output of the pipeline.
//
// # Architecture
//
// The package sits at the serialization boundary between internal representations
// and external formats:
//
//   - [Graph], [Scene]: Serialization types (this package)
//   - pkg/core/family.Graph: Internal graph representation
//   - pkg/core/layout.Result: Internal layout (positions, status)
//
// Use [FromFamily]/[ToFamily] to convert between them.
//
// # Formats
//
// Graphs can be read from JSON, TOML or YAML. The format is chosen from the
// file extension by [FormatFromPath]:
//
//	graph.FormatJSON // ".json"
//	graph.FormatTOML // ".toml"
//	graph.FormatYAML // ".yaml", ".yml"
//
// Scenes are always written as JSON.
//
// # Graph Serialization
//
// Graphs use a node-link format. Father and mother references on a person
// imply child edges, so the edge list only needs partner links and any
// parent links not expressed as references:
//
//	{
//	  "people": [
//	    {"id": "adam"},
//	    {"id": "eve"},
//	    {"id": "seth", "father": "adam", "mother": "eve"}
//	  ],
//	  "edges": [{"from": "adam", "to": "eve", "type": "partner"}]
//	}
//
// The same graph in TOML:
//
//	[[people]]
//	id = "seth"
//	father = "adam"
//	mother = "eve"
//
//	[[edges]]
//	from = "adam"
//	to = "eve"
//	type = "partner"
package graph
