// Package pipeline provides the load → validate → render pipeline shared by
// the CLI, the HTTP service and the MCP tool server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: read the edge list, the node positions and an optional backdrop
//     graph, then validate them (well-formed edges, every endpoint placed)
//  2. Render: produce each requested format (SVG, PNG, DOT, Graphviz SVG)
//
// Rendered artifacts are cached under a key derived from a SHA-256 of the
// loaded inputs and every option that changes the output bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    GraphPath:     "tree.json",
//	    PositionsPath: "cities.json",
//	    BackdropPath:  "full.json",
//	    Formats:       []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/edgeviz/pkg/cache"
	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and MCP
// =============================================================================

const (
	// DefaultWidth is the default canvas width in user units.
	DefaultWidth = float64(svg.DefaultWidth)

	// DefaultHeight is the default canvas height in user units.
	DefaultHeight = float64(svg.DefaultHeight)

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = cache.DefaultTTL
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"

	// FormatGraphviz is an SVG laid out and drawn by Graphviz from the DOT
	// output, as opposed to the native animated SVG.
	FormatGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. Inputs are given
// either as file paths or inline; inline values win.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Inputs
	GraphPath     string          `json:"-"`
	Graph         graph.Graph     `json:"graph,omitempty"`
	PositionsPath string          `json:"-"`
	Positions     graph.Positions `json:"positions,omitempty"`
	BackdropPath  string          `json:"-"`
	Backdrop      graph.Graph     `json:"backdrop,omitempty"`

	// Render options
	Formats       []string `json:"formats,omitempty"`
	Animated      bool     `json:"animated,omitempty"`
	Width         float64  `json:"width,omitempty"`
	Height        float64  `json:"height,omitempty"`
	Background    string   `json:"background,omitempty"`
	NodeColor     string   `json:"node_color,omitempty"`
	EdgeColor     string   `json:"edge_color,omitempty"`
	BackdropColor string   `json:"backdrop_color,omitempty"`
	IDPrefix      string   `json:"id_prefix,omitempty"`
	Scale         float64  `json:"scale,omitempty"`

	// UsedNodesOnly skips positions that no foreground or backdrop edge
	// touches.
	UsedNodesOnly bool `json:"used_nodes_only,omitempty"`

	// Cache options
	Refresh bool          `json:"refresh,omitempty"`
	TTL     time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// InputHash is the content hash of the loaded inputs.
	InputHash string

	// Summary holds the headline numbers of the foreground graph.
	Summary graph.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// Cached is true when every artifact came from the cache.
	Cached bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
	CacheHits  int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, dot, graphviz)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list such as "svg,png".
// Blank entries are dropped and duplicates removed.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.GraphPath == "" && o.Graph == nil {
		return errors.New(errors.ErrCodeInvalidInput, "graph is required")
	}
	if o.PositionsPath == "" && o.Positions == nil {
		return errors.New(errors.ErrCodeInvalidInput, "positions are required")
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if err := o.Document().Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Document returns the SVG canvas described by the options.
func (o *Options) Document() svg.Document {
	return svg.Document{
		Width:         o.Width,
		Height:        o.Height,
		Background:    o.Background,
		NodeColor:     o.NodeColor,
		EdgeColor:     o.EdgeColor,
		BackdropColor: o.BackdropColor,
		Animated:      o.Animated,
		IDPrefix:      o.IDPrefix,
	}
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:        format,
		Animated:      o.Animated,
		Width:         o.Width,
		Height:        o.Height,
		Background:    o.Background,
		NodeColor:     o.NodeColor,
		EdgeColor:     o.EdgeColor,
		BackdropColor: o.BackdropColor,
		IDPrefix:      o.IDPrefix,
		UsedNodesOnly: o.UsedNodesOnly,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
