// Package graph provides the edge-list graph model and the pure queries that
// derive summary views from it.
//
// A [Graph] is an ordered sequence of undirected, weighted [Edge] values. The
// order is chosen by whoever produced the graph (a spanning-tree builder, a
// shortest-path solver, a tour constructor) and is preserved by every
// function in this package, because renderers use it to sequence animations.
// Duplicate edges between the same pair of nodes are allowed and kept.
//
// # Node Types
//
// Nodes are identified by name only. Two explicit node types exist:
//
//   - [NodeIdentity]: a position-free node, produced by [NodeRecords]
//   - [PositionedNode]: a NodeIdentity plus user-space coordinates, supplied
//     by an external layout (usually a hand-authored position table)
//
// Convert between them with [PositionedNode.Identity] and [NodeIdentity.At].
//
// # Queries
//
//	total := graph.TotalWeight(g)              // left-to-right sum, 0 for empty
//	names := graph.NodeNames(g)                // first-occurrence order, no duplicates
//	cut := graph.BoundaryEdges(g, []string{"Berlin"}) // exactly one endpoint inside
//	sorted := graph.SortByWeight(g)            // stable, ties keep input order
//
// None of the queries validate their input; use [Validate] when the data comes
// from an untrusted source.
//
// # Serialization
//
// Graphs use a compact JSON edge-list format:
//
//	[
//	  {"nodes": ["Amsterdam", "Bruxelles"], "weight": 1},
//	  {"nodes": ["Bruxelles", "Paris"], "weight": 2}
//	]
//
// Position tables are arrays of {"name", "x", "y"} objects. See [ReadGraph],
// [ReadPositions] and [WriteGraph].
//
// # Concurrency
//
// All functions are pure and safe for concurrent use.
package graph
