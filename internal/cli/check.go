package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/render/inspect"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.svg>...",
		Short: "Verify the animation chain of rendered SVG files",
		Long: `Check parses each SVG and verifies that its edges are revealed in order,
that one fade follows the last reveal, and that the loop restarts when
the fade ends. Drawings without animations pass.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				rep, err := checkFile(path)
				if err != nil {
					printError("%s: %s", path, errors.UserMessage(err))
					failed++
					continue
				}
				printReport(path, rep)
				if !rep.OK() {
					failed++
				}
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidFormat, "%d of %d drawings failed the check", failed, len(args))
			}
			return nil
		},
	}
}

func checkFile(path string) (inspect.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return inspect.Report{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found")
		}
		return inspect.Report{}, err
	}
	return inspect.Check(data)
}

func printReport(path string, rep inspect.Report) {
	switch {
	case !rep.OK():
		printWarning("%s: broken animation chain", path)
		for _, p := range rep.Problems {
			printDetail("%s", p)
		}
	case rep.Reveals == 0:
		printSuccess("%s: static drawing", path)
		printDetail("%d lines", rep.Lines)
	default:
		printSuccess("%s: animation chain OK", path)
		printDetail("%d reveals · %d fades · cycle %s", rep.Reveals, rep.Fades, rep.Cycle)
		if rep.Cycle != rep.Default {
			printDetail("custom timing, default cycle is %s", rep.Default)
		}
		if rep.Prefix != "" {
			printDetail("id prefix %q", rep.Prefix)
		}
	}
}
