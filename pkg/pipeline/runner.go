package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/edgeviz/pkg/cache"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the HTTP service and the MCP server share it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	in, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	if result.InputHash, err = in.Hash(); err != nil {
		return nil, err
	}
	result.Summary = r.summarize(ctx, in.Graph, result.InputHash)

	logger.Info("loaded graph",
		"edges", result.Summary.Edges,
		"nodes", result.Summary.Nodes,
		"backdrop", len(in.Backdrop),
		"duration", result.Stats.LoadTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hits, err := r.renderWithCache(ctx, in, result.InputHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.CacheHits = hits
	result.Cached = hits == len(opts.Formats)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderWithCache serves each format from the cache when possible and
// renders the rest in one pass.
func (r *Runner) renderWithCache(ctx context.Context, in Inputs, inputHash string, opts Options) (map[string][]byte, int, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	hits := len(opts.Formats) - len(missing)
	if len(missing) == 0 {
		return artifacts, hits, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, in, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, hits, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, hits, nil
}

// summarize returns the summary of g, cached under the input hash.
func (r *Runner) summarize(ctx context.Context, g graph.Graph, inputHash string) graph.Summary {
	key := r.Keyer.SummaryKey(inputHash)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var s graph.Summary
		if json.Unmarshal(data, &s) == nil {
			observability.Cache().OnCacheHit(ctx, "summary")
			return s
		}
	}
	observability.Cache().OnCacheMiss(ctx, "summary")

	s := graph.Summarize(g)
	if data, err := json.Marshal(s); err == nil {
		if r.Cache.Set(ctx, key, data, DefaultTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "summary", len(data))
		}
	}
	return s
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
