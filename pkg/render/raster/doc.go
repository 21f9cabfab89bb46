// Package raster converts rendered SVG documents to PNG previews.
//
// Rasterization runs in-process with [github.com/srwiley/oksvg] and
// [github.com/srwiley/rasterx]. oksvg draws shapes only: text labels are
// skipped and SMIL animation is not evaluated. [Freeze] therefore rewrites
// an animated document (with [github.com/beevik/etree]) into its fully
// revealed frame before drawing, so a preview of an animated diagram shows
// every edge.
//
//	png, err := raster.ToPNG(svg, 2.0) // 2x scale
package raster
