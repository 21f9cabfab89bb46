// Package nodelink exports edge lists as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] writes an undirected DOT graph from positioned nodes and edges,
// pinning every node at its position so the Graphviz rendering lines up
// with the native SVG renderer. The DOT source can be saved for external
// Graphviz tools or rendered in-process with [RenderSVG].
//
//	dot, err := nodelink.ToDOT(positions, g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// A sub-graph such as a spanning tree can be overlaid on the full graph
// with [Options].Highlight.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz] with the neato layout engine.
package nodelink
