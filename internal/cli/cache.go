package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
		Long: `The artifact cache holds rendered outputs keyed by a hash of their inputs
and options. It defaults to a directory under the user cache dir; use
--cache or $` + envCache + ` for redis://, mongodb:// or sqlite:// backends.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var cacheURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := resolveCacheURL(cacheURL)
			store, err := cache.Open(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			n, err := cache.Clear(cmd.Context(), store)
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Cache: %s", url)
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheURL, "cache", "", "cache URL or directory (default $"+envCache+" or the user cache dir)")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), resolveCacheURL(""))
			return nil
		},
	}
}
