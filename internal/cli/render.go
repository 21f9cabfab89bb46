package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/pipeline"
)

// formatExts lists the file extension of each format. Longer extensions
// come first so basePath strips ".gv.svg" before ".svg".
var formatExts = []struct{ format, ext string }{
	{pipeline.FormatGraphviz, ".gv.svg"},
	{pipeline.FormatSVG, ".svg"},
	{pipeline.FormatPNG, ".png"},
	{pipeline.FormatDOT, ".dot"},
}

func extFor(format string) string {
	for _, fe := range formatExts {
		if fe.format == format {
			return fe.ext
		}
	}
	return "." + format
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file (single format), base path (several), or "-" for stdout
	formats   string // comma-separated output formats
	positions string // node position table
	backdrop  string // optional graph drawn statically underneath

	animated      bool
	width         float64
	height        float64
	background    string
	nodeColor     string
	edgeColor     string
	backdropColor string
	idPrefix      string
	usedNodes     bool
	scale         float64

	cacheURL string
	noCache  bool
	refresh  bool
	watch    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a graph over its node positions",
		Long: `Render draws the edges of graph.json between the nodes of the position
table. With --backdrop, a second graph is drawn underneath in a muted
color and the foreground edges are revealed one by one in a loop.`,
		Example: `  edgeviz render mst.json --positions cities.json --backdrop full.json
  edgeviz render mst.json -p cities.json -f svg,png -o out/mst
  edgeviz render mst.json -p cities.json --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.cacheURL, "", opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			err = renderOnce(ctx, runner, cmd.OutOrStdout(), args[0], &opts)
			if !opts.watch {
				return err
			}
			if err != nil {
				printError("%v", err)
			}
			return watchAndRender(ctx, runner, cmd.OutOrStdout(), args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.positions, "positions", "p", "", "node position table (JSON)")
	f.StringVarP(&opts.backdrop, "backdrop", "b", "", "graph drawn statically underneath (JSON)")
	f.StringVarP(&opts.output, "output", "o", "", `output file (one format), base path (several), or "-" for stdout`)
	f.StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, dot, graphviz (comma-separated)")
	f.BoolVarP(&opts.animated, "animated", "a", false, "animate the edges even without a backdrop")
	f.Float64Var(&opts.width, "width", pipeline.DefaultWidth, "canvas width")
	f.Float64Var(&opts.height, "height", pipeline.DefaultHeight, "canvas height")
	f.StringVar(&opts.background, "background", "", "background color")
	f.StringVar(&opts.nodeColor, "node-color", "", "node color")
	f.StringVar(&opts.edgeColor, "edge-color", "", "foreground edge color")
	f.StringVar(&opts.backdropColor, "backdrop-color", "", "backdrop edge color")
	f.BoolVar(&opts.usedNodes, "used-nodes", false, "draw only the nodes the graph or backdrop touches")
	f.StringVar(&opts.idPrefix, "id-prefix", "", "prefix for animation ids, for embedding several drawings in one page")
	f.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	addCacheFlags(cmd, &opts.cacheURL, &opts.noCache)
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")
	f.BoolVarP(&opts.watch, "watch", "w", false, "render again whenever an input file changes")
	_ = cmd.MarkFlagRequired("positions")

	return cmd
}

// addCacheFlags registers --cache and --no-cache.
func addCacheFlags(cmd *cobra.Command, url *string, off *bool) {
	cmd.Flags().StringVar(url, "cache", "", "cache URL or directory (default $"+envCache+" or the user cache dir)")
	cmd.Flags().BoolVar(off, "no-cache", false, "disable the artifact cache")
}

func (o *renderOpts) pipelineOptions(input string) pipeline.Options {
	formats := pipeline.ParseFormats(o.formats)
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	return pipeline.Options{
		GraphPath:     input,
		PositionsPath: o.positions,
		BackdropPath:  o.backdrop,
		Formats:       formats,
		Animated:      o.animated,
		Width:         o.width,
		Height:        o.height,
		Background:    o.background,
		NodeColor:     o.nodeColor,
		EdgeColor:     o.edgeColor,
		BackdropColor: o.backdropColor,
		IDPrefix:      o.idPrefix,
		UsedNodesOnly: o.usedNodes,
		Scale:         o.scale,
		Refresh:       o.refresh,
	}
}

// inputs returns the files a render reads.
func (o *renderOpts) inputs(graphPath string) []string {
	paths := []string{graphPath, o.positions}
	if o.backdrop != "" {
		paths = append(paths, o.backdrop)
	}
	return paths
}

// renderOnce runs the pipeline for input and writes the artifacts.
func renderOnce(ctx context.Context, runner *pipeline.Runner, stdout io.Writer, input string, o *renderOpts) error {
	logger := loggerFromContext(ctx)
	opts := o.pipelineOptions(input)

	prog := newProgress(logger)
	spin := newSpinner(ctx, os.Stderr, "Rendering "+input)
	spin.Start()
	res, err := runner.Execute(ctx, opts)
	if spin.Cancelled() {
		spin.Stop()
		return ctx.Err()
	}
	if err != nil {
		spin.StopWithError("Could not render " + input)
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s as %s", input, strings.Join(opts.Formats, ", ")))

	paths, err := writeArtifacts(stdout, res.Artifacts, opts.Formats, o.output, input)
	if err != nil {
		spin.StopWithError("Could not write " + input + " output")
		return err
	}
	if o.output == "-" {
		spin.Stop()
		return nil
	}

	spin.StopWithSuccess("Rendered " + input)
	printStats(res.Summary, res.Cached)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	if svgPath, ok := paths[pipeline.FormatSVG]; ok && (o.backdrop != "" || o.animated) {
		printNextStep("Verify the animation", "edgeviz check "+svgPath)
	}
	return nil
}

// watchAndRender renders input again each time one of its files changes,
// until ctx is cancelled. Render errors are reported and watching goes on.
func watchAndRender(ctx context.Context, runner *pipeline.Runner, stdout io.Writer, input string, o *renderOpts) error {
	w, err := newFileWatcher(o.inputs(input)...)
	if err != nil {
		return err
	}
	defer w.Close()

	printInfo("Watching %s for changes (Ctrl-C to stop)", strings.Join(o.inputs(input), ", "))
	return w.Run(ctx, func(changed string) {
		loggerFromContext(ctx).Debug("input changed", "file", changed)
		if err := renderOnce(ctx, runner, stdout, input, o); err != nil {
			printError("%v", err)
		}
	})
}

// =============================================================================
// Output Files
// =============================================================================

// artifactPaths maps formats to the files they were written to.
type artifactPaths map[string]string

// writeArtifacts writes each requested format. With output "-" the single
// requested artifact goes to stdout.
func writeArtifacts(stdout io.Writer, artifacts map[string][]byte, formats []string, output, input string) (artifactPaths, error) {
	if output == "-" {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "output to stdout needs exactly one format, got %d", len(formats))
		}
		_, err := stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	paths := make(artifactPaths, len(formats))
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths[format] = path
	}
	return paths, nil
}

// outputPath returns the file for format. A single format is written to
// output verbatim when one is given.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + extFor(format)
}

// basePath derives the base output path. Without output it strips the
// extension from input; otherwise it strips a known format extension from
// output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, fe := range formatExts {
		if strings.HasSuffix(output, fe.ext) {
			return strings.TrimSuffix(output, fe.ext)
		}
	}
	return output
}
