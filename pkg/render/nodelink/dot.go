package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// NodeColor and EdgeColor default to red and blue.
	NodeColor string
	EdgeColor string

	// Highlight lists edges drawn bold in HighlightColor on top of the
	// graph, for example a spanning tree over the full graph.
	Highlight      graph.Graph
	HighlightColor string

	// Unpinned lets Graphviz place nodes instead of using the positions.
	Unpinned bool
}

func (o Options) withDefaults() Options {
	if o.NodeColor == "" {
		o.NodeColor = "red"
	}
	if o.EdgeColor == "" {
		o.EdgeColor = "blue"
	}
	if o.HighlightColor == "" {
		o.HighlightColor = "blue"
	}
	return o
}

// ToDOT converts positioned nodes and an edge list to an undirected Graphviz
// graph. Node positions are pinned (pos="x,y!") with the y axis flipped so
// the result matches the SVG renderer's orientation. Weighted edges are
// labeled with their weight.
//
// Every edge endpoint must have a position, otherwise an
// [errors.ErrCodeUnknownNode] error is returned.
func ToDOT(positions graph.Positions, g graph.Graph, opts Options) (string, error) {
	opts = opts.withDefaults()
	if err := graph.CheckCoverage(positions, g); err != nil {
		return "", err
	}
	if err := graph.CheckCoverage(positions, opts.Highlight); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, width=0.15, fixedsize=true, style=filled, color=%q, fillcolor=%q, label=\"\", xlabel=\"\\N\", fontcolor=%q];\n",
		opts.NodeColor, opts.NodeColor, opts.NodeColor)
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=\"red\", penwidth=2];\n", opts.EdgeColor)
	buf.WriteString("\n")

	seen := make(map[string]bool, len(positions))
	for _, n := range positions {
		if seen[n.Name] {
			continue
		}
		seen[n.Name] = true
		if opts.Unpinned {
			fmt.Fprintf(&buf, "  %q;\n", n.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %q [pos=\"%s,%s!\"];\n", n.Name, graph.FormatNumber(n.X), graph.FormatNumber(-n.Y))
	}

	buf.WriteString("\n")
	for _, e := range g {
		fmt.Fprintf(&buf, "  %q -- %q%s;\n", e.Nodes[0], e.Nodes[1], edgeAttrs(e))
	}
	for _, e := range opts.Highlight {
		attrs := []string{fmt.Sprintf("color=%q", opts.HighlightColor), "penwidth=5"}
		if e.HasWeight() {
			attrs = append(attrs, fmt.Sprintf("label=%q", graph.FormatNumber(e.Weight)))
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.Nodes[0], e.Nodes[1], strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func edgeAttrs(e graph.Edge) string {
	if !e.HasWeight() {
		return ""
	}
	return fmt.Sprintf(" [label=%q]", graph.FormatNumber(e.Weight))
}

// RenderSVG lays out and renders a DOT graph to SVG with Graphviz. Pinned
// graphs use the neato engine, which honors pos attributes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return buf.Bytes(), nil
}
