package svg_test

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/render/inspect"
	"github.com/matzehuels/edgeviz/pkg/render/svg"
	"github.com/matzehuels/edgeviz/pkg/render/timeline"
)

var europe = graph.Positions{
	{NodeIdentity: graph.NodeIdentity{Name: "Paris"}, X: 195, Y: 271},
	{NodeIdentity: graph.NodeIdentity{Name: "Bruxelles"}, X: 220, Y: 225},
	{NodeIdentity: graph.NodeIdentity{Name: "Amsterdam"}, X: 238, Y: 190},
	{NodeIdentity: graph.NodeIdentity{Name: "Frankfurt"}, X: 290, Y: 240},
}

func parse(t *testing.T, markup string) *inspect.Drawing {
	t.Helper()
	d, err := inspect.Parse([]byte(markup))
	if err != nil {
		t.Fatalf("inspect.Parse() error: %v\n%s", err, markup)
	}
	return d
}

func TestRenderNodes(t *testing.T) {
	out := svg.RenderNodes([]graph.PositionedNode{graph.NodeIdentity{Name: "A"}.At(10, 20)})
	d := parse(t, out)

	if len(d.Circles) != 1 {
		t.Fatalf("circles = %d, want 1", len(d.Circles))
	}
	c := d.Circles[0]
	if c.CX != 10 || c.CY != 20 || c.R != 5 || c.Fill != "red" {
		t.Errorf("circle = %+v, want cx=10 cy=20 r=5 fill=red", c)
	}
	if len(d.Texts) != 1 {
		t.Fatalf("texts = %d, want 1", len(d.Texts))
	}
	txt := d.Texts[0]
	if txt.X != 17 || txt.Y != 20 || txt.Value != "A" || txt.Fill != "red" {
		t.Errorf("text = %+v, want x=17 y=20 A in red", txt)
	}
	if !strings.Contains(out, `<circle cx="10" cy="20"`) || !strings.Contains(out, `<text x="17" y="20"`) {
		t.Errorf("unexpected markup:\n%s", out)
	}
}

func TestRenderNodesColorAndOrder(t *testing.T) {
	nodes := []graph.PositionedNode{
		graph.NodeIdentity{Name: "B"}.At(1.5, 2),
		graph.NodeIdentity{Name: "A"}.At(1.5, 2),
		graph.NodeIdentity{Name: "B"}.At(3, 4),
	}
	d := parse(t, svg.RenderNodes(nodes, svg.WithColor("green")))
	if len(d.Circles) != 3 {
		t.Fatalf("circles = %d, want 3 (no dedup)", len(d.Circles))
	}
	var names []string
	for _, txt := range d.Texts {
		names = append(names, txt.Value)
		if txt.Fill != "green" {
			t.Errorf("text %q fill = %q, want green", txt.Value, txt.Fill)
		}
	}
	if got := strings.Join(names, ","); got != "B,A,B" {
		t.Errorf("draw order = %s, want B,A,B", got)
	}
	if d.Texts[0].X != 8.5 {
		t.Errorf("label x = %v, want 8.5", d.Texts[0].X)
	}
}

func TestRenderNodesEscapesNames(t *testing.T) {
	out := svg.RenderNodes([]graph.PositionedNode{graph.NodeIdentity{Name: "A&B <C>"}.At(0, 0)})
	if strings.Contains(out, "A&B <C>") {
		t.Fatalf("name not escaped:\n%s", out)
	}
	d := parse(t, out)
	if d.Texts[0].Value != "A&B <C>" {
		t.Errorf("text = %q, want %q", d.Texts[0].Value, "A&B <C>")
	}
}

func TestRenderEdgesStatic(t *testing.T) {
	g := graph.Graph{
		graph.NewEdge("Paris", "Bruxelles", 2),
		graph.Link("Bruxelles", "Amsterdam"),
	}
	out, err := svg.RenderEdges(europe, g)
	if err != nil {
		t.Fatalf("RenderEdges() error: %v", err)
	}
	d := parse(t, out)

	if len(d.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(d.Lines))
	}
	l := d.Lines[0]
	if l.X1 != 195 || l.Y1 != 271 || l.X2 != 220 || l.Y2 != 225 {
		t.Errorf("line = %+v, want Paris→Bruxelles", l)
	}
	for i, l := range d.Lines {
		if l.Stroke != "blue" || l.StrokeWidth != 5 || l.Animated() {
			t.Errorf("line %d = %+v, want static blue width 5", i, l)
		}
	}
	if strings.Contains(out, "<animate") {
		t.Error("static edges contain <animate>")
	}

	if len(d.Texts) != 1 {
		t.Fatalf("labels = %d, want 1 (unweighted edge has none)", len(d.Texts))
	}
	lbl := d.Texts[0]
	if lbl.X != 207.5 || lbl.Y != 248 || lbl.Value != "2" || lbl.Fill != "red" || lbl.Anchor != "middle" {
		t.Errorf("label = %+v, want 2 at (207.5, 248) red middle", lbl)
	}
}

func TestRenderEdgesLabelStaysRed(t *testing.T) {
	out, err := svg.RenderEdges(europe, graph.Graph{graph.NewEdge("Paris", "Frankfurt", 3)}, svg.WithColor("lightgrey"))
	if err != nil {
		t.Fatalf("RenderEdges() error: %v", err)
	}
	d := parse(t, out)
	if d.Lines[0].Stroke != "lightgrey" {
		t.Errorf("stroke = %q, want lightgrey", d.Lines[0].Stroke)
	}
	if d.Texts[0].Fill != "red" {
		t.Errorf("label fill = %q, want red", d.Texts[0].Fill)
	}
}

func TestRenderEdgesFirstMatchWins(t *testing.T) {
	nodes := append(graph.Positions{graph.NodeIdentity{Name: "Paris"}.At(1, 1)}, europe...)
	out, err := svg.RenderEdges(nodes, graph.Graph{graph.Link("Paris", "Bruxelles")})
	if err != nil {
		t.Fatalf("RenderEdges() error: %v", err)
	}
	d := parse(t, out)
	if d.Lines[0].X1 != 1 || d.Lines[0].Y1 != 1 {
		t.Errorf("line start = (%v, %v), want (1, 1)", d.Lines[0].X1, d.Lines[0].Y1)
	}
}

func TestRenderEdgesErrors(t *testing.T) {
	tests := []struct {
		name string
		g    graph.Graph
		code errors.Code
	}{
		{"unknown node", graph.Graph{graph.NewEdge("Paris", "Berlin", 1)}, errors.ErrCodeUnknownNode},
		{"identical endpoints", graph.Graph{graph.NewEdge("Paris", "Paris", 1)}, errors.ErrCodeMalformedEdge},
		{"empty endpoint", graph.Graph{graph.NewEdge("Paris", "", 1)}, errors.ErrCodeMalformedEdge},
		{"negative weight", graph.Graph{graph.NewEdge("Paris", "Bruxelles", -1)}, errors.ErrCodeMalformedEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, opts := range [][]svg.Option{nil, {svg.Animated()}} {
				_, err := svg.RenderEdges(europe, tt.g, opts...)
				if err == nil {
					t.Fatal("RenderEdges() expected error")
				}
				if got := errors.GetCode(err); got != tt.code {
					t.Errorf("GetCode() = %q, want %q (%v)", got, tt.code, err)
				}
			}
		})
	}
}

func TestRenderEdgesAnimated(t *testing.T) {
	g := graph.Graph{
		graph.NewEdge("Paris", "Bruxelles", 2),
		graph.NewEdge("Bruxelles", "Amsterdam", 1),
		graph.NewEdge("Paris", "Frankfurt", 2),
	}
	out, err := svg.RenderEdges(europe, g, svg.Animated())
	if err != nil {
		t.Fatalf("RenderEdges() error: %v", err)
	}
	d := parse(t, out)

	for i, l := range d.Lines {
		if l.StrokeWidth != 0 {
			t.Errorf("line %d stroke-width = %v, want 0", i, l.StrokeWidth)
		}
	}

	var reveals, fades int
	for _, a := range d.Animations() {
		if strings.HasPrefix(a.ID, "edge") {
			reveals++
		}
		if a.Begin == "edge3.end" {
			fades++
		}
	}
	if reveals != 3 {
		t.Errorf("reveals = %d, want 3", reveals)
	}
	if fades != 1 {
		t.Errorf("fades keyed to edge3.end = %d, want 1", fades)
	}
	if !strings.Contains(out, `id="edge1" attributeName="stroke-width" from="0" to="5" dur="0.2s" begin="0s;fade.end"`) {
		t.Errorf("edge1 reveal not found:\n%s", out)
	}
	if !strings.Contains(out, `id="fade" attributeName="stroke-width" from="10" to="0" dur="4s" begin="edge3.end"`) {
		t.Errorf("fade not found:\n%s", out)
	}

	rep, err := inspect.Check([]byte(out))
	if err != nil {
		t.Fatalf("inspect.Check() error: %v", err)
	}
	if !rep.OK() {
		t.Errorf("Check() problems: %v", rep.Problems)
	}
}

func TestRenderEdgesAnimatedEmpty(t *testing.T) {
	out, err := svg.RenderEdges(europe, nil, svg.Animated())
	if err != nil {
		t.Fatalf("RenderEdges() error: %v", err)
	}
	if out != "" {
		t.Errorf("RenderEdges(nil) = %q, want empty", out)
	}
	if strings.Contains(out, "animate") || strings.Contains(out, ".end") {
		t.Error("empty animation references something")
	}
}

func TestRenderEdgesAnimatedSingle(t *testing.T) {
	out, err := svg.RenderEdges(europe, graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2)}, svg.Animated())
	if err != nil {
		t.Fatalf("RenderEdges() error: %v", err)
	}
	d := parse(t, out)
	anims := d.Lines[0].Animations
	if len(anims) != 2 {
		t.Fatalf("animations = %d, want 2", len(anims))
	}
	if anims[0].ID != "edge1" || anims[0].Begin != "0s;fade.end" {
		t.Errorf("reveal = %+v", anims[0])
	}
	if anims[1].ID != "fade" || anims[1].Begin != "edge1.end" {
		t.Errorf("fade = %+v", anims[1])
	}
}

func TestRenderEdgesIDPrefix(t *testing.T) {
	g := graph.Graph{graph.Link("Paris", "Bruxelles"), graph.Link("Bruxelles", "Amsterdam")}
	out, err := svg.RenderEdges(europe, g, svg.Animated(), svg.WithLoop(timeline.WithIDPrefix("mst-")))
	if err != nil {
		t.Fatalf("RenderEdges() error: %v", err)
	}
	if !strings.Contains(out, `begin="0s;mst-fade.end"`) {
		t.Errorf("prefixed begin not found:\n%s", out)
	}
	rep, err := inspect.Check([]byte(out))
	if err != nil {
		t.Fatalf("inspect.Check() error: %v", err)
	}
	if rep.Prefix != "mst-" || !rep.OK() {
		t.Errorf("Check() = %+v", rep)
	}
}

func TestRenderDocument(t *testing.T) {
	full := graph.Graph{
		graph.NewEdge("Paris", "Bruxelles", 2),
		graph.NewEdge("Bruxelles", "Amsterdam", 1),
		graph.NewEdge("Paris", "Frankfurt", 2),
		graph.NewEdge("Amsterdam", "Frankfurt", 2),
	}
	tree := graph.Graph{full[1], full[0], full[2]}

	out, err := svg.RenderDocument(svg.DefaultDocument(), europe, tree, full)
	if err != nil {
		t.Fatalf("RenderDocument() error: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, `<svg width="700px" height="446px" version="1.1" xmlns="http://www.w3.org/2000/svg">`) {
		t.Errorf("unexpected header:\n%s", s)
	}
	if !strings.Contains(s, `<rect x="0" width="700" height="446" fill="cornsilk" rx="0" />`) {
		t.Errorf("background not found:\n%s", s)
	}

	d := parse(t, s)
	if d.Width != "700px" || d.Height != "446px" {
		t.Errorf("size = %s x %s", d.Width, d.Height)
	}
	if len(d.Lines) != 7 {
		t.Fatalf("lines = %d, want 4 backdrop + 3 tree", len(d.Lines))
	}
	for i, l := range d.Lines[:4] {
		if l.Stroke != "lightgrey" || l.Animated() {
			t.Errorf("backdrop line %d = %+v", i, l)
		}
	}
	for i, l := range d.Lines[4:] {
		if l.Stroke != "blue" || !l.Animated() {
			t.Errorf("tree line %d = %+v", i, l)
		}
	}
	if len(d.Circles) != len(europe) {
		t.Errorf("circles = %d, want %d", len(d.Circles), len(europe))
	}

	rep, err := inspect.Check(out)
	if err != nil {
		t.Fatalf("inspect.Check() error: %v", err)
	}
	if !rep.OK() || rep.Reveals != 3 || rep.Animated != 3 {
		t.Errorf("Check() = %+v", rep)
	}
}

func TestRenderDocumentStatic(t *testing.T) {
	g := graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2)}
	doc := svg.Document{Width: 300, Height: 200, Background: "white"}
	out, err := svg.RenderDocument(doc, europe, g, nil)
	if err != nil {
		t.Fatalf("RenderDocument() error: %v", err)
	}
	d := parse(t, string(out))
	if d.Width != "300px" {
		t.Errorf("width = %q, want 300px", d.Width)
	}
	if len(d.Lines) != 1 || d.Lines[0].Animated() || d.Lines[0].Stroke != "blue" {
		t.Errorf("lines = %+v, want one static blue line", d.Lines)
	}
	if !strings.Contains(string(out), `fill="white"`) {
		t.Error("background color not applied")
	}
}

func TestRenderDocumentAnimatedWithoutBackdrop(t *testing.T) {
	g := graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2), graph.NewEdge("Bruxelles", "Amsterdam", 1)}
	out, err := svg.RenderDocument(svg.Document{Animated: true, IDPrefix: "t1-"}, europe, g, nil)
	if err != nil {
		t.Fatalf("RenderDocument() error: %v", err)
	}
	rep, err := inspect.Check(out)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !rep.OK() || rep.Reveals != 2 || rep.Prefix != "t1-" {
		t.Errorf("Check() = %+v", rep)
	}
}

func TestRenderDocumentErrors(t *testing.T) {
	g := graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2)}

	if _, err := svg.RenderDocument(svg.Document{EdgeColor: "not a color"}, europe, g, nil); errors.GetCode(err) != errors.ErrCodeInvalidColor {
		t.Errorf("bad color: error = %v, want %s", err, errors.ErrCodeInvalidColor)
	}
	if _, err := svg.RenderDocument(svg.Document{Width: -1}, europe, g, nil); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("negative width: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	backdrop := graph.Graph{graph.NewEdge("Paris", "Nowhere", 1)}
	if _, err := svg.RenderDocument(svg.DefaultDocument(), europe, g, backdrop); errors.GetCode(err) != errors.ErrCodeUnknownNode {
		t.Errorf("unknown backdrop node: error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
}

func TestRenderDocumentRejectsBadIDPrefix(t *testing.T) {
	g := graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2)}
	for _, prefix := range []string{"a;b", "x y", "a.b", "a+b", "9lives"} {
		t.Run(prefix, func(t *testing.T) {
			doc := svg.Document{IDPrefix: prefix, Animated: true}
			if _, err := svg.RenderDocument(doc, europe, g, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("RenderDocument(IDPrefix=%q) error = %v, want %s", prefix, err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRenderEdgesRejectsBadIDPrefix(t *testing.T) {
	g := graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2)}
	_, err := svg.RenderEdges(europe, g, svg.Animated(), svg.WithLoop(timeline.WithIDPrefix("a;b")))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderEdges() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestRenderDocumentCanvasBounds(t *testing.T) {
	g := graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2)}
	tests := []struct {
		name string
		doc  svg.Document
	}{
		{"huge width", svg.Document{Width: 1e19}},
		{"over max height", svg.Document{Height: svg.MaxSize + 1}},
		{"infinite", svg.Document{Width: math.Inf(1)}},
		{"nan", svg.Document{Height: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svg.RenderDocument(tt.doc, europe, g, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}
