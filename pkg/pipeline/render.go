package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/render/nodelink"
	"github.com/matzehuels/edgeviz/pkg/render/raster"
	"github.com/matzehuels/edgeviz/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
//
// PNG output is rasterized from the SVG document, so an animated document
// shows its final frame. DOT output draws the backdrop as the graph and the
// foreground as highlighted edges when a backdrop is present; the graphviz
// format is that DOT laid out by Graphviz. With opts.UsedNodesOnly, nodes
// outside both graphs are left out of every format.
func Render(ctx context.Context, in Inputs, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	if opts.UsedNodesOnly {
		in.Positions = in.Positions.Restrict(graph.NodeNames(slices.Concat(in.Backdrop, in.Graph)))
	}

	var doc []byte
	document := func() ([]byte, error) {
		if doc != nil {
			return doc, nil
		}
		var err error
		doc, err = svg.RenderDocument(opts.Document(), in.Positions, in.Graph, in.Backdrop)
		return doc, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = document()
		case FormatPNG:
			if data, err = document(); err == nil {
				data, err = raster.ToPNG(data, opts.Scale)
			}
		case FormatDOT:
			var dot string
			dot, err = renderDOT(in, opts)
			data = []byte(dot)
		case FormatGraphviz:
			var dot string
			if dot, err = renderDOT(in, opts); err == nil {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderDOT(in Inputs, opts Options) (string, error) {
	dopts := nodelink.Options{NodeColor: opts.NodeColor, EdgeColor: opts.EdgeColor}
	if len(in.Backdrop) == 0 {
		return nodelink.ToDOT(in.Positions, in.Graph, dopts)
	}
	dopts.EdgeColor = opts.BackdropColor
	if dopts.EdgeColor == "" {
		dopts.EdgeColor = svg.DefaultBackdropColor
	}
	dopts.Highlight = in.Graph
	dopts.HighlightColor = opts.EdgeColor
	return nodelink.ToDOT(in.Positions, in.Backdrop, dopts)
}
