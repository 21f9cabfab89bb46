package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/edgeviz/pkg/cache"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/observability"
)

// Inputs are the validated data of one run.
type Inputs struct {
	Graph     graph.Graph
	Positions graph.Positions
	Backdrop  graph.Graph
}

// Hash returns a SHA-256 over the graph, positions and backdrop.
func (in Inputs) Hash() (string, error) {
	parts := make([][]byte, 0, 3)
	for _, v := range []any{in.Graph, in.Positions, in.Backdrop} {
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("hash inputs: %w", err)
		}
		parts = append(parts, data)
	}
	return cache.HashParts(parts...), nil
}

// Load reads the inputs named by opts and validates them: every edge must be
// well formed and every endpoint, backdrop included, must have a position.
func Load(ctx context.Context, opts Options) (Inputs, error) {
	source := opts.GraphPath
	if opts.Graph != nil {
		source = "inline"
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	in, err := load(opts)
	hooks.OnLoadComplete(ctx, source, len(in.Graph), len(in.Positions), time.Since(start), err)
	if err != nil {
		return Inputs{}, err
	}
	return in, nil
}

func load(opts Options) (Inputs, error) {
	var (
		in  Inputs
		err error
	)
	if in.Graph, err = readGraph(opts.Graph, opts.GraphPath); err != nil {
		return in, fmt.Errorf("graph: %w", err)
	}
	if in.Backdrop, err = readGraph(opts.Backdrop, opts.BackdropPath); err != nil {
		return in, fmt.Errorf("backdrop: %w", err)
	}
	in.Positions = opts.Positions
	if in.Positions == nil {
		if in.Positions, err = graph.ReadPositionsFile(opts.PositionsPath); err != nil {
			return in, fmt.Errorf("positions: %w", err)
		}
	}

	if err := graph.Validate(in.Graph); err != nil {
		return in, fmt.Errorf("graph: %w", err)
	}
	if err := graph.Validate(in.Backdrop); err != nil {
		return in, fmt.Errorf("backdrop: %w", err)
	}
	if err := graph.ValidatePositions(in.Positions); err != nil {
		return in, fmt.Errorf("positions: %w", err)
	}
	if err := graph.CheckCoverage(in.Positions, in.Graph); err != nil {
		return in, fmt.Errorf("graph: %w", err)
	}
	if err := graph.CheckCoverage(in.Positions, in.Backdrop); err != nil {
		return in, fmt.Errorf("backdrop: %w", err)
	}
	return in, nil
}

func readGraph(inline graph.Graph, path string) (graph.Graph, error) {
	if inline != nil || path == "" {
		return inline, nil
	}
	return graph.ReadGraphFile(path)
}
