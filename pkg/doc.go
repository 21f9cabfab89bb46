// Package pkg provides the libraries behind edgeviz, a renderer for
// weighted edge lists drawn over positioned nodes.
//
// # Overview
//
// edgeviz draws a graph as lines between named points. A second "backdrop"
// graph can be drawn faintly underneath, and the edges of the main graph can
// be revealed one after another in an SVG animation loop. The packages are:
//
//  1. [graph] - Edges, positioned nodes and their JSON forms
//  2. [render] - SVG, PNG and DOT output, plus animation checks
//  3. [pipeline] - Orchestration (load, validate, render, cache)
//  4. [cache] - Artifact stores (file, Redis, MongoDB, SQLite)
//  5. [server] - HTTP API over the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	graph JSON + positions JSON
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [render/svg] package (lines, backdrop, reveal timeline)
//	         ↓
//	    SVG/PNG/DOT output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    GraphPath:     "tree.json",
//	    PositionsPath: "cities.json",
//	    Formats:       []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("tree.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Error Handling
//
// All packages return errors from [errors], which carry a machine-readable
// code. Use errors.IsInputError to tell bad input from internal failures.
//
// [graph]: github.com/matzehuels/edgeviz/pkg/graph
// [render]: github.com/matzehuels/edgeviz/pkg/render
// [render/svg]: github.com/matzehuels/edgeviz/pkg/render/svg
// [pipeline]: github.com/matzehuels/edgeviz/pkg/pipeline
// [cache]: github.com/matzehuels/edgeviz/pkg/cache
// [server]: github.com/matzehuels/edgeviz/pkg/server
// [errors]: github.com/matzehuels/edgeviz/pkg/errors
package pkg
