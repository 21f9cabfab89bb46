package graph

import "slices"

// TotalWeight returns the sum of all edge weights, accumulated left to right.
// Edges without a weight contribute 0. An empty graph weighs 0.
func TotalWeight(g Graph) float64 {
	var total float64
	for _, e := range g {
		total += e.Weight
	}
	return total
}

// NodeNames returns the distinct endpoint names of g in first-occurrence
// order: edges left to right, and within an edge Nodes[0] before Nodes[1].
func NodeNames(g Graph) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range g {
		for _, n := range e.Nodes {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}

// NodeRecords returns the same nodes as [NodeNames], in the same order,
// wrapped as [NodeIdentity] values.
func NodeRecords(g Graph) []NodeIdentity {
	names := NodeNames(g)
	records := make([]NodeIdentity, len(names))
	for i, n := range names {
		records[i] = NodeIdentity{Name: n}
	}
	return records
}

// CompareByWeight orders edges by weight only and returns -1, 0 or 1.
// Equal weights compare as 0 with no secondary key, so callers that need a
// deterministic order must sort stably.
func CompareByWeight(a, b Edge) int {
	switch {
	case a.Weight < b.Weight:
		return -1
	case a.Weight > b.Weight:
		return 1
	}
	return 0
}

// SortByWeight returns a copy of g sorted by ascending weight. The sort is
// stable: edges of equal weight keep their input order.
func SortByWeight(g Graph) Graph {
	out := slices.Clone(g)
	slices.SortStableFunc(out, CompareByWeight)
	return out
}

// BoundaryEdges returns the edges of g with exactly one endpoint in include.
// Edges with both endpoints inside, or both outside, are dropped. Input
// order is preserved.
func BoundaryEdges(g Graph, include []string) Graph {
	in := make(map[string]struct{}, len(include))
	for _, n := range include {
		in[n] = struct{}{}
	}

	var out Graph
	for _, e := range g {
		_, a := in[e.Nodes[0]]
		_, b := in[e.Nodes[1]]
		if a != b {
			out = append(out, e)
		}
	}
	return out
}

// Summary holds the headline numbers of a graph.
type Summary struct {
	Edges       int     `json:"edges"`
	Nodes       int     `json:"nodes"`
	TotalWeight float64 `json:"total_weight"`
}

// Summarize computes the edge count, distinct node count and total weight.
func Summarize(g Graph) Summary {
	return Summary{
		Edges:       len(g),
		Nodes:       len(NodeNames(g)),
		TotalWeight: TotalWeight(g),
	}
}
