package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/graph"
)

// graphStats is the JSON form of the stats command.
type graphStats struct {
	graph.Summary
	NodeNames []string `json:"node_names"`
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <graph.json>",
		Short: "Print edge count, node count and total weight of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readValidGraph(args[0])
			if err != nil {
				return err
			}
			names := graph.NodeNames(g)
			if asJSON {
				if names == nil {
					names = []string{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(graphStats{Summary: graph.Summarize(g), NodeNames: names})
			}
			printSummary(args[0], graph.Summarize(g), names)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// boundaryCommand creates the boundary command.
func (c *CLI) boundaryCommand() *cobra.Command {
	var (
		nodes  []string
		output string
	)

	cmd := &cobra.Command{
		Use:   "boundary <graph.json>",
		Short: "Write the edges with exactly one endpoint in a node set",
		Long: `Boundary keeps the edges that cross the border of the given node set:
edges with both endpoints inside the set, or both outside, are dropped.
The input order of the remaining edges is preserved.`,
		Example: `  edgeviz boundary full.json --nodes Paris,Bruxelles -o cut.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readValidGraph(args[0])
			if err != nil {
				return err
			}
			out := graph.BoundaryEdges(g, nodes)
			loggerFromContext(cmd.Context()).Debugf("Boundary of %d nodes: %d of %d edges", len(nodes), len(out), len(g))
			return writeGraphOutput(cmd.OutOrStdout(), out, output)
		},
	}

	cmd.Flags().StringSliceVarP(&nodes, "nodes", "n", nil, "node names inside the set (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("nodes")
	return cmd
}

// sortCommand creates the sort command.
func (c *CLI) sortCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sort <graph.json>",
		Short: "Write a graph with its edges in ascending weight order",
		Long: `Sort orders edges by weight, lightest first. Edges of equal weight keep
their input order and unweighted edges sort as weight 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readValidGraph(args[0])
			if err != nil {
				return err
			}
			return writeGraphOutput(cmd.OutOrStdout(), graph.SortByWeight(g), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func readValidGraph(path string) (graph.Graph, error) {
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// writeGraphOutput writes g to output, or to stdout when output is empty
// or "-".
func writeGraphOutput(stdout io.Writer, g graph.Graph, output string) error {
	if output == "" || output == "-" {
		return graph.WriteGraph(g, stdout)
	}
	if err := graph.WriteGraphFile(g, output); err != nil {
		return err
	}
	printSuccess("Wrote %d edges", len(g))
	printFile(output)
	return nil
}
