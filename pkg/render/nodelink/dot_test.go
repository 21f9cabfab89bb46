package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
)

var positions = graph.Positions{
	graph.NodeIdentity{Name: "A"}.At(10, 20),
	graph.NodeIdentity{Name: "B"}.At(30.5, 40),
	graph.NodeIdentity{Name: "C"}.At(50, 60),
}

func TestToDOT(t *testing.T) {
	g := graph.Graph{graph.NewEdge("A", "B", 2), graph.Link("B", "C")}
	dot, err := ToDOT(positions, g, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	for _, want := range []string{
		"graph G {",
		`"A" [pos="10,-20!"];`,
		`"B" [pos="30.5,-40!"];`,
		`"A" -- "B" [label="2"];`,
		`"B" -- "C";`,
		`edge [color="blue"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("DOT contains directed edges")
	}
}

func TestToDOTHighlight(t *testing.T) {
	full := graph.Graph{graph.NewEdge("A", "B", 2), graph.NewEdge("B", "C", 1), graph.NewEdge("A", "C", 4)}
	dot, err := ToDOT(positions, full, Options{
		EdgeColor:      "lightgrey",
		Highlight:      full[:2],
		HighlightColor: "blue",
	})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if got := strings.Count(dot, "penwidth=5"); got != 2 {
		t.Errorf("highlighted edges = %d, want 2", got)
	}
	if !strings.Contains(dot, `edge [color="lightgrey"`) {
		t.Errorf("edge color not applied:\n%s", dot)
	}
}

func TestToDOTUnpinned(t *testing.T) {
	dot, err := ToDOT(positions, graph.Graph{graph.Link("A", "C")}, Options{Unpinned: true})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if strings.Contains(dot, "pos=") {
		t.Errorf("unpinned DOT has positions:\n%s", dot)
	}
}

func TestToDOTDuplicatePositions(t *testing.T) {
	dup := append(graph.Positions{graph.NodeIdentity{Name: "A"}.At(1, 1)}, positions...)
	dot, err := ToDOT(dup, graph.Graph{graph.Link("A", "B")}, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if strings.Count(dot, `"A" [pos=`) != 1 || !strings.Contains(dot, `"A" [pos="1,-1!"]`) {
		t.Errorf("first position should win:\n%s", dot)
	}
}

func TestToDOTUnknownNode(t *testing.T) {
	_, err := ToDOT(positions, graph.Graph{graph.Link("A", "Z")}, Options{})
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("ToDOT() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
	_, err = ToDOT(positions, nil, Options{Highlight: graph.Graph{graph.Link("Z", "A")}})
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("ToDOT(highlight) error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
}

func TestRenderSVG(t *testing.T) {
	dot, err := ToDOT(positions, graph.Graph{graph.NewEdge("A", "B", 2)}, Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	svg, err := RenderSVG(t.Context(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not svg:\n%s", svg)
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(t.Context(), "graph {"); err == nil {
		t.Error("RenderSVG() expected error for invalid DOT")
	}
}
