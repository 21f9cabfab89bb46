package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/buildinfo"
	"github.com/matzehuels/edgeviz/pkg/cache"
	"github.com/matzehuels/edgeviz/pkg/observability"
	"github.com/matzehuels/edgeviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "edgeviz"

	// envCache names the cache URL variable; see [cache.Open].
	envCache = "EDGEVIZ_CACHE"

	// envCachePrefix names the cache key namespace variable.
	envCachePrefix = "EDGEVIZ_CACHE_PREFIX"

	// envAddr names the listen address variable of the serve command.
	envAddr = "EDGEVIZ_ADDR"

	// defaultEnvFile is read at startup when present.
	defaultEnvFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	envFile     string
	cachePrefix string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "edgeviz",
		Short: "Edgeviz draws weighted graphs over fixed node positions",
		Long: `Edgeviz renders weighted edge lists onto a canvas of positioned nodes.
The result is an SVG whose edges are revealed one by one in a looping
animation, optionally over a static backdrop graph. PNG, DOT and
Graphviz renderings are available for the same inputs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := LoadEnv(c.envFile); err != nil {
				return err
			}
			c.registerHooks()
			cmd.SetContext(withLogger(contextOf(cmd), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.envFile, "env-file", defaultEnvFile, "read default settings from this file if it exists")
	root.PersistentFlags().StringVar(&c.cachePrefix, "cache-prefix", "", "namespace for cache keys (default $"+envCachePrefix+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.boundaryCommand())
	root.AddCommand(c.sortCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// registerHooks routes pipeline, cache and HTTP events to the debug log.
func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the cache at cacheURL. Keys
// are namespaced by --cache-prefix, then scope, then EDGEVIZ_CACHE_PREFIX.
func (c *CLI) newRunner(ctx context.Context, cacheURL, scope string, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cacheURL, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, newKeyer(c.cachePrefix, scope), c.Logger), nil
}

// newKeyer returns a scoped keyer for the first non-empty prefix, or nil
// for the default keyer.
func newKeyer(prefixes ...string) cache.Keyer {
	for _, p := range append(prefixes, os.Getenv(envCachePrefix)) {
		if p != "" {
			return cache.NewScopedKeyer(cache.NewDefaultKeyer(), p+":")
		}
	}
	return nil
}

// newCache opens the cache named by the flag, EDGEVIZ_CACHE, or the
// per-user cache directory, in that order.
func newCache(ctx context.Context, cacheURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, resolveCacheURL(cacheURL))
}

func resolveCacheURL(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(envCache); env != "" {
		return env
	}
	dir, err := cacheDir()
	if err != nil {
		return "none"
	}
	return dir
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/edgeviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
