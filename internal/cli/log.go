// Package cli implements the edgeviz command-line interface.
//
// The commands read edge lists and position tables from JSON files, render
// them through [pipeline.Runner], and write the artifacts next to their
// inputs. The same pipeline is served over HTTP by "serve" and to MCP
// clients by "mcp".
//
// # Commands
//
// The main commands are:
//   - render: Draw a graph as SVG, PNG, DOT or Graphviz SVG
//   - stats, boundary, sort: Query and transform edge lists
//   - check: Verify the animation chain of a rendered SVG
//   - batch: Run every render listed in a TOML job file
//   - serve, mcp: Expose the pipeline over HTTP or MCP stdio
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and pipeline, cache and HTTP events are
// reported to the debug log through observability hooks.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Rendered 2 formats (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks writes pipeline, cache and HTTP events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load started", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, edges, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("load complete", "source", source, "edges", edges, "nodes", nodes, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request received", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response sent", "method", method, "route", route, "status", status, "duration", d)
}
