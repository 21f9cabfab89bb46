package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
)

func TestStatsCommand(t *testing.T) {
	dir := writeFixtures(t)

	_, status, err := execute(t, "stats", filepath.Join(dir, "full.json"))
	if err != nil {
		t.Fatalf("stats error: %v", err)
	}
	for _, want := range []string{"Edges", "3", "Total weight", "7.5", "Paris, Bruxelles, Amsterdam"} {
		if !strings.Contains(status, want) {
			t.Errorf("output missing %q:\n%s", want, status)
		}
	}

	stdout, _, err := execute(t, "stats", "--json", filepath.Join(dir, "full.json"))
	if err != nil {
		t.Fatalf("stats --json error: %v", err)
	}
	var got graphStats
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if got.Summary != (graph.Summary{Edges: 3, Nodes: 3, TotalWeight: 7.5}) || len(got.NodeNames) != 3 {
		t.Errorf("stats = %+v", got)
	}
}

func TestBoundaryCommand(t *testing.T) {
	dir := writeFixtures(t)

	stdout, _, err := execute(t, "boundary", filepath.Join(dir, "full.json"), "--nodes", "Paris")
	if err != nil {
		t.Fatalf("boundary error: %v", err)
	}
	got, err := graph.ReadGraph(strings.NewReader(stdout))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	want := graph.Graph{graph.NewEdge("Paris", "Bruxelles", 2), graph.NewEdge("Paris", "Amsterdam", 4)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("boundary = %v, want %v", got, want)
	}

	out := filepath.Join(dir, "cut.json")
	if _, status, err := execute(t, "boundary", filepath.Join(dir, "full.json"), "-n", "Paris,Bruxelles", "-o", out); err != nil {
		t.Fatalf("boundary -o error: %v", err)
	} else if !strings.Contains(status, "Wrote 2 edges") {
		t.Errorf("status = %q", status)
	}
	g, err := graph.ReadGraphFile(out)
	if err != nil || len(g) != 2 {
		t.Errorf("cut.json = %v, %v", g, err)
	}
}

func TestBoundaryCommandEmpty(t *testing.T) {
	dir := writeFixtures(t)
	stdout, _, err := execute(t, "boundary", filepath.Join(dir, "full.json"), "--nodes", "Nowhere")
	if err != nil {
		t.Fatalf("boundary error: %v", err)
	}
	if strings.TrimSpace(stdout) != "[]" {
		t.Errorf("stdout = %q, want []", stdout)
	}
}

func TestSortCommand(t *testing.T) {
	dir := writeFixtures(t)
	stdout, _, err := execute(t, "sort", filepath.Join(dir, "full.json"))
	if err != nil {
		t.Fatalf("sort error: %v", err)
	}
	got, err := graph.ReadGraph(strings.NewReader(stdout))
	if err != nil {
		t.Fatal(err)
	}
	var weights []float64
	for _, e := range got {
		weights = append(weights, e.Weight)
	}
	if len(weights) != 3 || weights[0] != 1.5 || weights[1] != 2 || weights[2] != 4 {
		t.Errorf("weights = %v, want [1.5 2 4]", weights)
	}
}

func TestGraphCommandsRejectMalformedEdges(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"nodes": ["A"]}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{
		{"stats", bad},
		{"sort", bad},
		{"boundary", bad, "--nodes", "A"},
	} {
		_, _, err := execute(t, args...)
		if !errors.Is(err, errors.ErrCodeMalformedEdge) {
			t.Errorf("%s: error = %v, want MALFORMED_EDGE", args[0], err)
		}
	}
}
