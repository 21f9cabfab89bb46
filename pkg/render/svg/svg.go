package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/render/timeline"
)

// Default colors.
const (
	DefaultNodeColor     = "red"
	DefaultEdgeColor     = "blue"
	DefaultLabelColor    = "red"
	DefaultBackdropColor = "lightgrey"
	DefaultBackground    = "cornsilk"
)

const (
	nodeRadius  = 5
	labelOffset = 7
)

// Option configures [RenderNodes] and [RenderEdges].
type Option func(*renderer)

type renderer struct {
	color      string
	labelColor string
	animated   bool
	loop       []timeline.LoopOption
}

// WithColor sets the node color for [RenderNodes] or the line color for
// [RenderEdges].
func WithColor(c string) Option { return func(r *renderer) { r.color = c } }

// WithLabelColor sets the color of edge weight labels.
func WithLabelColor(c string) Option { return func(r *renderer) { r.labelColor = c } }

// Animated turns on the reveal loop for [RenderEdges].
func Animated() Option { return func(r *renderer) { r.animated = true } }

// WithLoop passes options to [timeline.Loop], for example an ID prefix when
// two animated fragments share a document.
func WithLoop(opts ...timeline.LoopOption) Option {
	return func(r *renderer) { r.loop = append(r.loop, opts...) }
}

func newRenderer(color string, opts []Option) renderer {
	r := renderer{color: color, labelColor: DefaultLabelColor}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderNodes emits a circle and a name label for every node, in input order.
// The label sits 7 units right of the circle center. Nodes are not
// deduplicated.
func RenderNodes(nodes []graph.PositionedNode, opts ...Option) string {
	r := newRenderer(DefaultNodeColor, opts)
	color := escapeAttr(r.color)

	var buf bytes.Buffer
	for _, n := range nodes {
		x, y := num(n.X), num(n.Y)
		fmt.Fprintf(&buf, `<circle cx="%s" cy="%s" r="%d" fill="%s" />`+"\n", x, y, nodeRadius, color)
		fmt.Fprintf(&buf, `<text x="%s" y="%s" fill="%s">%s</text>`+"\n", num(n.X+labelOffset), y, color, escapeText(n.Name))
	}
	return buf.String()
}

// RenderEdges emits a line for every edge between its endpoints' positions,
// plus a centered weight label for weighted edges. Endpoints are looked up
// by name in nodes, first match wins.
//
// Static lines have stroke width 5. Animated lines start at width 0 and
// carry the <animate> elements of [timeline.Loop]; the i-th edge is the
// target of reveal i.
func RenderEdges(nodes []graph.PositionedNode, edges graph.Graph, opts ...Option) (string, error) {
	r := newRenderer(DefaultEdgeColor, opts)
	idx := graph.Positions(nodes).Index()

	var tl timeline.Timeline
	if r.animated {
		tl = timeline.Loop(len(edges), r.loop...)
		if err := tl.Validate(); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "build animation timeline")
		}
	}

	color := escapeAttr(r.color)
	labelColor := escapeAttr(r.labelColor)

	var buf bytes.Buffer
	for i, e := range edges {
		if err := graph.ValidateEdge(e); err != nil {
			return "", errors.Wrap(errors.ErrCodeMalformedEdge, err, "edge %d", i)
		}
		a, b, err := endpoints(idx, e, i)
		if err != nil {
			return "", err
		}

		line := fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"`,
			num(a.X), num(a.Y), num(b.X), num(b.Y), color)
		if r.animated {
			fmt.Fprintf(&buf, "%s stroke-width=\"0\">\n", line)
			for _, iv := range tl.ForTarget(i) {
				writeAnimate(&buf, iv)
			}
			buf.WriteString("</line>\n")
		} else {
			fmt.Fprintf(&buf, "%s stroke-width=\"%s\" />\n", line, num(timeline.DefaultStrokeWidth))
		}

		if e.HasWeight() {
			mid := graph.Midpoint(a, b)
			fmt.Fprintf(&buf, `<text text-anchor="middle" x="%s" y="%s" fill="%s">%s</text>`+"\n",
				num(mid.X), num(mid.Y), labelColor, num(e.Weight))
		}
	}
	return buf.String(), nil
}

func endpoints(idx map[string]graph.PositionedNode, e graph.Edge, i int) (graph.PositionedNode, graph.PositionedNode, error) {
	var out [2]graph.PositionedNode
	for k, name := range e.Nodes {
		n, ok := idx[name]
		if !ok {
			return out[0], out[1], errors.New(errors.ErrCodeUnknownNode, "edge %d (%s) references unknown node %q", i, e, name)
		}
		out[k] = n
	}
	return out[0], out[1], nil
}

func writeAnimate(buf *bytes.Buffer, iv timeline.Interval) {
	buf.WriteString("\t<animate")
	if iv.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, escapeAttr(iv.ID))
	}
	fmt.Fprintf(buf, ` attributeName="%s" from="%s" to="%s" dur="%s" begin="%s" fill="freeze" />`+"\n",
		iv.Attribute, num(iv.From), num(iv.To), iv.Dur(), escapeAttr(iv.Trigger.Begin()))
}

func num(v float64) string { return graph.FormatNumber(v) }

func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// escapeAttr escapes s for a double-quoted attribute. xml.EscapeText covers
// quotes as well as markup characters.
func escapeAttr(s string) string { return escapeText(s) }
