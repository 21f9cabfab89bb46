package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for edgeviz.

Completions only offer the files each command reads: graph and position
tables (*.json) for render, stats, boundary and sort, drawings (*.svg)
for check and job files (*.toml) for batch. --format completes to the
supported output formats.

  bash        source <(edgeviz completion bash)
  zsh         edgeviz completion zsh > "${fpath[1]}/_edgeviz"
  fish        edgeviz completion fish | source
  powershell  edgeviz completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}

	return cmd
}

// registerCompletions narrows file completion to the inputs each command
// reads.
func registerCompletions(root *cobra.Command) {
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "render", "stats", "boundary", "sort":
			sub.ValidArgsFunction = completeExt(1, "json")
		case "check":
			sub.ValidArgsFunction = completeExt(0, "svg")
		case "batch":
			sub.ValidArgsFunction = completeExt(1, "toml")
		}
		for _, name := range []string{"positions", "backdrop"} {
			if sub.Flags().Lookup(name) != nil {
				_ = sub.RegisterFlagCompletionFunc(name, completeExt(0, "json"))
			}
		}
		if sub.Flags().Lookup("format") != nil {
			_ = sub.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatNames(), cobra.ShellCompDirectiveNoFileComp))
		}
	}
}

// completeExt completes files with the given extensions. With limit > 0 no
// more files are offered once limit arguments are given.
func completeExt(limit int, exts ...string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if limit > 0 && len(args) >= limit {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

func formatNames() []string {
	names := make([]string, len(formatExts))
	for i, fe := range formatExts {
		names[i] = fe.format
	}
	return names
}
