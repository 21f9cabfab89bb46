package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/edgeviz/pkg/errors"
)

// ReadGraph decodes a JSON edge list from r.
//
// The input must be a JSON array of edges:
//
//	[{"nodes": ["A", "B"], "weight": 3}, {"nodes": ["B", "C"]}]
//
// An edge without "weight" is decoded as unweighted. ReadGraph returns an
// [errors.ErrCodeMalformedEdge] error when an edge does not name exactly two
// nodes, and an [errors.ErrCodeInvalidInput] error for malformed JSON. It does
// not run [Validate] and does not close r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph")
	}
	return g, nil
}

// ReadGraphFile reads a JSON edge list from the file at path.
// See [ReadGraph] for the format.
func ReadGraphFile(path string) (Graph, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := ReadGraph(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteGraph encodes g as an indented JSON edge list. The output can be read
// back with [ReadGraph].
func WriteGraph(g Graph, w io.Writer) error {
	if g == nil {
		g = Graph{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes g to a JSON file at path.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadPositions decodes a JSON position table from r:
//
//	[{"name": "Berlin", "x": 402, "y": 178}]
func ReadPositions(r io.Reader) (Positions, error) {
	var p Positions
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode positions")
	}
	return p, nil
}

// ReadPositionsFile reads a JSON position table from the file at path.
func ReadPositionsFile(path string) (Positions, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadPositions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
