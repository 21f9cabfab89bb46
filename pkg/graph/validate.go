package graph

import (
	"math"

	"github.com/matzehuels/edgeviz/pkg/errors"
)

// Validate checks that every edge names two distinct, well-formed endpoints
// and that weights are finite and non-negative. It returns the first problem
// as an [errors.ErrCodeMalformedEdge] error.
func Validate(g Graph) error {
	for i, e := range g {
		if err := ValidateEdge(e); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedEdge, err, "edge %d", i)
		}
	}
	return nil
}

// ValidateEdge checks a single edge. See [Validate].
func ValidateEdge(e Edge) error {
	for _, n := range e.Nodes {
		if err := errors.ValidateNodeName(n); err != nil {
			return err
		}
	}
	if e.Nodes[0] == e.Nodes[1] {
		return errors.New(errors.ErrCodeMalformedEdge, "edge %s has identical endpoints", e)
	}
	if e.Unweighted {
		return nil
	}
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
		return errors.New(errors.ErrCodeMalformedEdge, "edge %s has a non-finite weight", e)
	}
	if e.Weight < 0 {
		return errors.New(errors.ErrCodeMalformedEdge, "edge %s has a negative weight", e)
	}
	return nil
}

// ValidatePositions checks that every position has a well-formed name and
// finite coordinates.
func ValidatePositions(p Positions) error {
	for i, n := range p {
		if err := errors.ValidateNodeName(n.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "position %d", i)
		}
		if !finite(n.X) || !finite(n.Y) {
			return errors.New(errors.ErrCodeInvalidInput, "position %d (%s) has non-finite coordinates", i, n.Name)
		}
	}
	return nil
}

// CheckCoverage reports the first node referenced by g that has no entry in
// p, as an [errors.ErrCodeUnknownNode] error.
func CheckCoverage(p Positions, g Graph) error {
	idx := p.Index()
	for i, e := range g {
		for _, n := range e.Nodes {
			if _, ok := idx[n]; !ok {
				return errors.New(errors.ErrCodeUnknownNode, "edge %d (%s) references unknown node %q", i, e, n)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
