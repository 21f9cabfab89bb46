package graph

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/edgeviz/pkg/errors"
)

// =============================================================================
// Edge
// =============================================================================

// Edge is an undirected, weighted connection between two named nodes.
//
// The endpoints are unordered for graph semantics but Nodes[0] and Nodes[1]
// keep their positions for rendering. An edge built with [Link] carries no
// weight: it contributes 0 to [TotalWeight] and renders without a label.
type Edge struct {
	Nodes      [2]string
	Weight     float64
	Unweighted bool
}

// NewEdge returns a weighted edge between a and b.
func NewEdge(a, b string, weight float64) Edge {
	return Edge{Nodes: [2]string{a, b}, Weight: weight}
}

// Link returns an edge between a and b without a weight.
func Link(a, b string) Edge {
	return Edge{Nodes: [2]string{a, b}, Unweighted: true}
}

// HasWeight reports whether the edge carries a weight.
func (e Edge) HasWeight() bool { return !e.Unweighted }

// Has reports whether name is one of the edge's endpoints.
func (e Edge) Has(name string) bool {
	return e.Nodes[0] == name || e.Nodes[1] == name
}

// String formats the edge as "A-B (w)", or "A-B" when it has no weight.
func (e Edge) String() string {
	if e.Unweighted {
		return e.Nodes[0] + "-" + e.Nodes[1]
	}
	return fmt.Sprintf("%s-%s (%s)", e.Nodes[0], e.Nodes[1], FormatNumber(e.Weight))
}

// edgeJSON is the wire shape of an Edge. Weight is a pointer so an absent
// weight survives a round trip.
type edgeJSON struct {
	Nodes  []string `json:"nodes"`
	Weight *float64 `json:"weight,omitempty"`
}

// MarshalJSON encodes the edge as {"nodes": [a, b], "weight": w}.
func (e Edge) MarshalJSON() ([]byte, error) {
	out := edgeJSON{Nodes: e.Nodes[:]}
	if !e.Unweighted {
		w := e.Weight
		out.Weight = &w
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an edge and rejects anything that does not name
// exactly two endpoints.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var in edgeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in.Nodes) != 2 {
		return errors.New(errors.ErrCodeMalformedEdge, "edge must have exactly two nodes, got %d", len(in.Nodes))
	}
	*e = Edge{Nodes: [2]string{in.Nodes[0], in.Nodes[1]}}
	if in.Weight == nil {
		e.Unweighted = true
	} else {
		e.Weight = *in.Weight
	}
	return nil
}

// =============================================================================
// Graph
// =============================================================================

// Graph is an ordered sequence of edges. Order is significant for animation
// sequencing and is never changed by this package except by [SortByWeight].
type Graph []Edge

// =============================================================================
// Nodes
// =============================================================================

// NodeIdentity is a node without coordinates.
type NodeIdentity struct {
	Name string `json:"name"`
}

// At attaches coordinates to the node.
func (n NodeIdentity) At(x, y float64) PositionedNode {
	return PositionedNode{NodeIdentity: n, X: x, Y: y}
}

// PositionedNode is a node with user-space coordinates. Positions are never
// computed here; they come from an external layout.
type PositionedNode struct {
	NodeIdentity
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity drops the coordinates.
func (p PositionedNode) Identity() NodeIdentity { return p.NodeIdentity }

// Point returns the node's position as a vector.
func (p PositionedNode) Point() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b PositionedNode) r2.Vec {
	return r2.Scale(0.5, r2.Add(a.Point(), b.Point()))
}

// Positions is a node position table. Lookups are by exact name and the
// first entry wins when a name appears more than once.
type Positions []PositionedNode

// Lookup returns the first node named name.
func (p Positions) Lookup(name string) (PositionedNode, bool) {
	for _, n := range p {
		if n.Name == name {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Index returns a name → node map with first-match-wins semantics.
func (p Positions) Index() map[string]PositionedNode {
	idx := make(map[string]PositionedNode, len(p))
	for _, n := range p {
		if _, ok := idx[n.Name]; !ok {
			idx[n.Name] = n
		}
	}
	return idx
}

// Restrict returns the entries of p whose names appear in names, in the
// order of p. Duplicates in p are kept.
func (p Positions) Restrict(names []string) Positions {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	var out Positions
	for _, n := range p {
		if _, ok := keep[n.Name]; ok {
			out = append(out, n)
		}
	}
	return out
}

// FormatNumber formats v the way it is written into markup: the shortest
// decimal that round-trips, without exponent for ordinary magnitudes
// (10 → "10", 7.5 → "7.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
