package cli

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/server"
)

type serveOpts struct {
	addr     string
	cacheURL string
	noCache  bool
	maxBody  int64
	timeout  time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve starts the HTTP render service:

  GET  /healthz             liveness and build information
  POST /v1/render           render inline inputs, artifacts in a JSON body
  POST /v1/render/{format}  render one format, raw bytes
  POST /v1/stats            summarize an edge list
  POST /v1/boundary         boundary edges of a node set

The service stops gracefully on Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.cacheURL, "", opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if opts.addr == "" {
				opts.addr = envOr(envAddr, server.DefaultAddr)
			}
			srv := server.New(runner, c.Logger,
				server.WithMaxBodyBytes(opts.maxBody),
				server.WithTimeout(opts.timeout))
			err = srv.ListenAndServe(ctx, opts.addr, func(a net.Addr) {
				printSuccess("Listening on http://%s", a)
			})
			if errors.Is(err, context.Canceled) {
				printInfo("Server stopped")
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "", "listen address (default $"+envAddr+" or "+server.DefaultAddr+")")
	f.Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	f.DurationVar(&opts.timeout, "timeout", server.DefaultTimeout, "maximum time spent on one request")
	addCacheFlags(cmd, &opts.cacheURL, &opts.noCache)
	return cmd
}
