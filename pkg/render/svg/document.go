package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/render/timeline"
)

// Default canvas size.
const (
	DefaultWidth  = 700
	DefaultHeight = 446

	// MaxSize bounds each canvas dimension.
	MaxSize = 100_000
)

// Document describes the canvas and palette of a complete image.
type Document struct {
	Width, Height float64
	Background    string
	NodeColor     string
	EdgeColor     string
	BackdropColor string
	LabelColor    string

	// Animated animates the foreground even without a backdrop.
	Animated bool

	// IDPrefix is prepended to animation IDs.
	IDPrefix string

	// Loop overrides the reveal loop timing of the foreground.
	Loop []timeline.LoopOption
}

// DefaultDocument returns a 700×446 cornsilk canvas with red nodes, blue
// edges and a light grey backdrop.
func DefaultDocument() Document {
	return Document{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Background:    DefaultBackground,
		NodeColor:     DefaultNodeColor,
		EdgeColor:     DefaultEdgeColor,
		BackdropColor: DefaultBackdropColor,
		LabelColor:    DefaultLabelColor,
	}
}

// withDefaults fills zero fields from [DefaultDocument].
func (d Document) withDefaults() Document {
	def := DefaultDocument()
	if d.Width == 0 {
		d.Width = def.Width
	}
	if d.Height == 0 {
		d.Height = def.Height
	}
	if d.Background == "" {
		d.Background = def.Background
	}
	if d.NodeColor == "" {
		d.NodeColor = def.NodeColor
	}
	if d.EdgeColor == "" {
		d.EdgeColor = def.EdgeColor
	}
	if d.BackdropColor == "" {
		d.BackdropColor = def.BackdropColor
	}
	if d.LabelColor == "" {
		d.LabelColor = def.LabelColor
	}
	return d
}

// Validate checks canvas size, colors and the animation ID prefix. Zero fields are allowed and take
// their defaults.
func (d Document) Validate() error {
	d = d.withDefaults()
	if !(d.Width > 0 && d.Height > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %sx%s", num(d.Width), num(d.Height))
	}
	if d.Width > MaxSize || d.Height > MaxSize {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size %sx%s exceeds %d per side", num(d.Width), num(d.Height), MaxSize)
	}
	if err := errors.ValidateIDPrefix(d.IDPrefix); err != nil {
		return err
	}
	for _, c := range []string{d.Background, d.NodeColor, d.EdgeColor, d.BackdropColor, d.LabelColor} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}

// RenderDocument assembles a complete SVG document.
//
// Paint order is background, backdrop, edges, nodes. When backdrop is
// non-empty it is drawn statically in the backdrop color and edges are
// animated on top of it; otherwise edges are drawn statically unless
// doc.Animated is set. Every entry of positions is drawn as a node.
func RenderDocument(doc Document, positions graph.Positions, edges, backdrop graph.Graph) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc = doc.withDefaults()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%spx" height="%spx" version="1.1" xmlns="http://www.w3.org/2000/svg">`+"\n",
		num(doc.Width), num(doc.Height))
	fmt.Fprintf(&buf, `<rect x="0" width="%s" height="%s" fill="%s" rx="0" />`+"\n",
		num(doc.Width), num(doc.Height), escapeAttr(doc.Background))

	fg := []Option{WithColor(doc.EdgeColor), WithLabelColor(doc.LabelColor)}
	if len(backdrop) > 0 {
		back, err := RenderEdges(positions, backdrop, WithColor(doc.BackdropColor), WithLabelColor(doc.LabelColor))
		if err != nil {
			return nil, fmt.Errorf("backdrop: %w", err)
		}
		buf.WriteString(back)
	}
	if len(backdrop) > 0 || doc.Animated {
		loop := append([]timeline.LoopOption{timeline.WithIDPrefix(doc.IDPrefix)}, doc.Loop...)
		fg = append(fg, Animated(), WithLoop(loop...))
	}

	front, err := RenderEdges(positions, edges, fg...)
	if err != nil {
		return nil, err
	}
	buf.WriteString(front)
	buf.WriteString(RenderNodes(positions, WithColor(doc.NodeColor)))
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
