// Package render groups the output stages of edgeviz.
//
// # Overview
//
// Rendering turns positioned nodes and edge lists into images:
//
//   - [svg]: native SVG fragments and documents, static or animated
//   - [timeline]: the typed reveal-loop timeline behind animated edges
//   - [inspect]: parsing rendered SVG back and checking its animation chain
//   - [raster]: PNG previews of rendered documents
//   - [nodelink]: Graphviz DOT export and rendering
//
// A typical document render:
//
//	doc, err := svg.RenderDocument(svg.DefaultDocument(), positions, tree, full)
//	png, err := raster.ToPNG(doc, 2.0)
//
// [svg]: github.com/matzehuels/edgeviz/pkg/render/svg
// [timeline]: github.com/matzehuels/edgeviz/pkg/render/timeline
// [inspect]: github.com/matzehuels/edgeviz/pkg/render/inspect
// [raster]: github.com/matzehuels/edgeviz/pkg/render/raster
// [nodelink]: github.com/matzehuels/edgeviz/pkg/render/nodelink
package render
