package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/pipeline"
)

// =============================================================================
// Job File
// =============================================================================

// jobFile is a batch of renders sharing canvas, colors and cache:
//
//	cache        = "sqlite://renders.db"
//	cache_prefix = "benelux"
//	positions    = "cities.json"
//
//	[canvas]
//	width      = 700
//	height     = 446
//	background = "cornsilk"
//
//	[colors]
//	node     = "red"
//	edge     = "blue"
//	backdrop = "lightgrey"
//
//	[[render]]
//	graph      = "mst.json"
//	backdrop   = "full.json"
//	output     = "out/mst"
//	formats    = ["svg", "png"]
//	used_nodes = true
//
// Relative paths are resolved against the directory of the job file.
// Outputs must stay inside that directory.
type jobFile struct {
	Cache       string       `toml:"cache"`
	CachePrefix string       `toml:"cache_prefix"`
	Positions   string       `toml:"positions"`
	Canvas      canvasConfig `toml:"canvas"`
	Colors      colorConfig  `toml:"colors"`
	Renders     []renderJob  `toml:"render"`
}

type canvasConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Background string  `toml:"background"`
	Scale      float64 `toml:"scale"`
}

type colorConfig struct {
	Node     string `toml:"node"`
	Edge     string `toml:"edge"`
	Backdrop string `toml:"backdrop"`
}

// renderJob is one [[render]] entry. Positions falls back to the file-level
// table.
type renderJob struct {
	Name      string   `toml:"name"`
	Graph     string   `toml:"graph"`
	Positions string   `toml:"positions"`
	Backdrop  string   `toml:"backdrop"`
	Output    string   `toml:"output"`
	Formats   []string `toml:"formats"`
	Animated  bool     `toml:"animated"`
	IDPrefix  string   `toml:"id_prefix"`
	UsedNodes bool     `toml:"used_nodes"`
}

// loadJobs reads and checks a job file. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func loadJobs(path string) (*jobFile, error) {
	var jf jobFile
	md, err := toml.DecodeFile(path, &jf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if len(jf.Renders) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: no [[render]] entries", path)
	}

	dir := filepath.Dir(path)
	jf.Positions = resolvePath(dir, jf.Positions)
	if jf.Cache != "" && !strings.Contains(jf.Cache, "://") && jf.Cache != "none" {
		jf.Cache = resolvePath(dir, jf.Cache)
	}
	for i := range jf.Renders {
		r := &jf.Renders[i]
		if r.Name == "" {
			r.Name = r.Graph
		}
		if r.Output != "" {
			if err := errors.ValidatePath(r.Output); err != nil {
				return nil, fmt.Errorf("%s: render %q: output: %w", path, r.Name, err)
			}
		}
		if err := errors.ValidateIDPrefix(r.IDPrefix); err != nil {
			return nil, fmt.Errorf("%s: render %q: %w", path, r.Name, err)
		}
		r.Graph = resolvePath(dir, r.Graph)
		r.Positions = resolvePath(dir, r.Positions)
		r.Backdrop = resolvePath(dir, r.Backdrop)
		r.Output = resolvePath(dir, r.Output)
		if r.Positions == "" {
			r.Positions = jf.Positions
		}
		if r.Graph == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: render %d has no graph", path, i+1)
		}
		if r.Positions == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: render %q has no positions", path, r.Name)
		}
		if err := pipeline.ValidateFormats(r.Formats); err != nil {
			return nil, fmt.Errorf("%s: render %q: %w", path, r.Name, err)
		}
	}
	return &jf, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// options builds the pipeline options of one render.
func (jf *jobFile) options(r renderJob) pipeline.Options {
	formats := r.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	return pipeline.Options{
		GraphPath:     r.Graph,
		PositionsPath: r.Positions,
		BackdropPath:  r.Backdrop,
		Formats:       formats,
		Animated:      r.Animated,
		Width:         jf.Canvas.Width,
		Height:        jf.Canvas.Height,
		Background:    jf.Canvas.Background,
		Scale:         jf.Canvas.Scale,
		NodeColor:     jf.Colors.Node,
		EdgeColor:     jf.Colors.Edge,
		BackdropColor: jf.Colors.Backdrop,
		IDPrefix:      r.IDPrefix,
		UsedNodesOnly: r.UsedNodes,
	}
}

// =============================================================================
// Command
// =============================================================================

type batchOpts struct {
	cacheURL  string
	noCache   bool
	refresh   bool
	keepGoing bool
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch <jobs.toml>",
		Short: "Run every render listed in a TOML job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jf, err := loadJobs(args[0])
			if err != nil {
				return err
			}
			cacheURL := opts.cacheURL
			if cacheURL == "" {
				cacheURL = jf.Cache
			}
			runner, err := c.newRunner(cmd.Context(), cacheURL, jf.CachePrefix, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return runBatch(cmd.Context(), runner, cmd.OutOrStdout(), jf, opts)
		},
	}

	addCacheFlags(cmd, &opts.cacheURL, &opts.noCache)
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "continue with the next render after a failure")
	return cmd
}

// runBatch renders each job in file order.
func runBatch(ctx context.Context, runner *pipeline.Runner, stdout io.Writer, jf *jobFile, opts batchOpts) error {
	prog := newProgress(loggerFromContext(ctx))
	failed := 0
	for i, job := range jf.Renders {
		if err := ctx.Err(); err != nil {
			return err
		}
		printInfo("[%d/%d] %s", i+1, len(jf.Renders), job.Name)

		popts := jf.options(job)
		popts.Refresh = opts.refresh
		if err := runJob(ctx, runner, stdout, popts, job); err != nil {
			if !opts.keepGoing {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			printError("%s: %v", job.Name, err)
			failed++
		}
	}

	prog.done(fmt.Sprintf("Ran %d renders", len(jf.Renders)))
	if failed > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%d of %d renders failed", failed, len(jf.Renders))
	}
	printSuccess("Rendered %d jobs", len(jf.Renders))
	return nil
}

func runJob(ctx context.Context, runner *pipeline.Runner, stdout io.Writer, opts pipeline.Options, job renderJob) error {
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(stdout, res.Artifacts, opts.Formats, job.Output, job.Graph)
	if err != nil {
		return err
	}
	printStats(res.Summary, res.Cached)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}
