package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/buildinfo"
	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/pipeline"
	"github.com/matzehuels/edgeviz/pkg/render/inspect"
)

// mcpCommand creates the mcp command.
func (c *CLI) mcpCommand() *cobra.Command {
	var (
		cacheURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve graph tools to MCP clients over stdio",
		Long: `Mcp runs a Model Context Protocol server on stdin/stdout with the tools
graph_stats, boundary_edges, render_svg and check_svg. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol.
			uiOut = os.Stderr

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cacheURL, "", noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.Logger.Info("MCP server ready on stdio", "version", buildinfo.Version)
			return newMCPServer(runner).Run(ctx, &mcp.StdioTransport{})
		},
	}

	addCacheFlags(cmd, &cacheURL, &noCache)
	return cmd
}

// =============================================================================
// Tool Arguments
// =============================================================================

type edgeArg struct {
	Nodes  []string `json:"nodes" jsonschema:"the names of the two endpoints"`
	Weight *float64 `json:"weight,omitempty" jsonschema:"edge weight; omit for an unweighted link"`
}

type positionArg struct {
	Name string  `json:"name" jsonschema:"node name"`
	X    float64 `json:"x" jsonschema:"x coordinate in canvas units"`
	Y    float64 `json:"y" jsonschema:"y coordinate in canvas units, growing downwards"`
}

type graphStatsArgs struct {
	Graph []edgeArg `json:"graph" jsonschema:"the edge list"`
}

type boundaryArgs struct {
	Graph []edgeArg `json:"graph" jsonschema:"the edge list"`
	Nodes []string  `json:"nodes" jsonschema:"names of the nodes inside the set"`
}

type renderArgs struct {
	Graph     []edgeArg     `json:"graph" jsonschema:"the edges to draw"`
	Positions []positionArg `json:"positions" jsonschema:"coordinates of every node named by the edges"`
	Backdrop  []edgeArg     `json:"backdrop,omitempty" jsonschema:"edges drawn statically underneath; enables the reveal animation"`
	Format    string        `json:"format,omitempty" jsonschema:"svg (default), dot, graphviz or png"`
	Animated  bool          `json:"animated,omitempty" jsonschema:"animate the edges even without a backdrop"`
	EdgeColor string        `json:"edge_color,omitempty" jsonschema:"color of the drawn edges"`
	IDPrefix  string        `json:"id_prefix,omitempty" jsonschema:"prefix for animation ids"`
}

type checkArgs struct {
	SVG string `json:"svg" jsonschema:"the SVG document to check"`
}

func toGraph(edges []edgeArg) (graph.Graph, error) {
	g := make(graph.Graph, 0, len(edges))
	for i, e := range edges {
		if len(e.Nodes) != 2 {
			return nil, errors.New(errors.ErrCodeMalformedEdge, "edge %d: want 2 nodes, got %d", i, len(e.Nodes))
		}
		if e.Weight == nil {
			g = append(g, graph.Link(e.Nodes[0], e.Nodes[1]))
			continue
		}
		g = append(g, graph.NewEdge(e.Nodes[0], e.Nodes[1], *e.Weight))
	}
	return g, nil
}

func toPositions(ps []positionArg) graph.Positions {
	out := make(graph.Positions, len(ps))
	for i, p := range ps {
		out[i] = graph.NodeIdentity{Name: p.Name}.At(p.X, p.Y)
	}
	return out
}

// =============================================================================
// Server
// =============================================================================

// newMCPServer registers the edgeviz tools on a new MCP server.
func newMCPServer(runner *pipeline.Runner) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: appName, Version: buildinfo.Version}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Counts the edges and distinct nodes of a weighted edge list and sums its weights",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args graphStatsArgs) (*mcp.CallToolResult, any, error) {
		g, err := validGraph(args.Graph)
		if err != nil {
			return errorResult(err), nil, nil
		}
		names := graph.NodeNames(g)
		if names == nil {
			names = []string{}
		}
		return jsonResult(graphStats{Summary: graph.Summarize(g), NodeNames: names})
	})

	mcp.AddTool(s, &mcp.Tool{
		Name:        "boundary_edges",
		Description: "Returns the edges with exactly one endpoint in the given node set, in input order",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args boundaryArgs) (*mcp.CallToolResult, any, error) {
		g, err := validGraph(args.Graph)
		if err != nil {
			return errorResult(err), nil, nil
		}
		out := graph.BoundaryEdges(g, args.Nodes)
		if out == nil {
			out = graph.Graph{}
		}
		return jsonResult(out)
	})

	mcp.AddTool(s, &mcp.Tool{
		Name:        "render_svg",
		Description: "Draws an edge list over fixed node positions. With a backdrop the edges are revealed one by one in a loop",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args renderArgs) (*mcp.CallToolResult, any, error) {
		res, format, err := renderTool(ctx, runner, args)
		if err != nil {
			return errorResult(err), nil, nil
		}
		data := res.Artifacts[format]
		if format == pipeline.FormatPNG {
			return &mcp.CallToolResult{Content: []mcp.Content{
				&mcp.ImageContent{Data: data, MIMEType: "image/png"},
			}}, nil, nil
		}
		return textResult(string(data)), nil, nil
	})

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_svg",
		Description: "Verifies the reveal and fade chain of an animated SVG produced by render_svg",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args checkArgs) (*mcp.CallToolResult, any, error) {
		rep, err := inspect.Check([]byte(args.SVG))
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(rep)
	})

	return s
}

func validGraph(edges []edgeArg) (graph.Graph, error) {
	g, err := toGraph(edges)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

func renderTool(ctx context.Context, runner *pipeline.Runner, args renderArgs) (*pipeline.Result, string, error) {
	format := args.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return nil, "", err
	}
	g, err := toGraph(args.Graph)
	if err != nil {
		return nil, "", err
	}
	opts := pipeline.Options{
		Graph:     g,
		Positions: toPositions(args.Positions),
		Formats:   []string{format},
		Animated:  args.Animated,
		EdgeColor: args.EdgeColor,
		IDPrefix:  args.IDPrefix,
	}
	if len(args.Backdrop) > 0 {
		if opts.Backdrop, err = toGraph(args.Backdrop); err != nil {
			return nil, "", err
		}
	}
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	return res, format, nil
}

// =============================================================================
// Results
// =============================================================================

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

func errorResult(err error) *mcp.CallToolResult {
	r := textResult(errors.UserMessage(err))
	r.IsError = true
	return r
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return textResult(string(data)), nil, nil
}
