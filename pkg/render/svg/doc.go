// Package svg renders positioned nodes and edge lists as SVG markup.
//
// # Fragments
//
// [RenderNodes] and [RenderEdges] each return a markup fragment: a list of
// <circle>/<text> pairs for nodes and <line> elements (with optional weight
// labels) for edges. Fragments are meant to be concatenated by a caller, in
// paint order, into one document.
//
//	nodes := svg.RenderNodes(positions)
//	edges, err := svg.RenderEdges(positions, g, svg.Animated())
//
// Edges are drawn in input order. In animated mode that order is also the
// reveal order: the lines grow one after another, fade out together and the
// loop starts over. The timing comes from [timeline.Loop] and is compiled to
// SMIL <animate> elements nested in each line.
//
// # Documents
//
// [RenderDocument] assembles a complete image: background, an optional
// backdrop graph drawn in a muted color, the foreground graph (animated when
// a backdrop is given) and the nodes on top.
//
// # Strictness
//
// Rendering fails fast. An edge with a malformed shape returns an
// [errors.ErrCodeMalformedEdge] error and an edge naming a node absent from
// the positions returns [errors.ErrCodeUnknownNode]. Node names and colors
// are XML-escaped.
//
// [timeline.Loop]: github.com/matzehuels/edgeviz/pkg/render/timeline.Loop
// [errors.ErrCodeMalformedEdge]: github.com/matzehuels/edgeviz/pkg/errors.ErrCodeMalformedEdge
// [errors.ErrCodeUnknownNode]: github.com/matzehuels/edgeviz/pkg/errors.ErrCodeUnknownNode
package svg
