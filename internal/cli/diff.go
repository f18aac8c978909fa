package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/converger/internal/report"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	Input  string
	Preset string

	// IDGenerator allows overriding the run id generator (for testing).
	// If nil, defaults to report.UUIDv7Generator.
	IDGenerator report.IDGenerator
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff [table]",
		Short: "Print the per-group differences without plotting",
		Long: `Print, for every panel and qualifying group, the swept values and the
differences from the group's most converged row, plus the symmetric-log
threshold each panel would be drawn with.

Example:
  converger diff
  converger diff runs.dat --preset bands --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input table (default Si_converger.dat)")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "panel layout, replacing configured panels")

	return cmd
}

func runDiff(opts *DiffOptions, args []string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions, cmd.ErrOrStderr())
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, args, overrides{Input: opts.Input, Preset: opts.Preset})
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load configuration", err)
	}

	fig, err := buildFigure(cfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to build figure", err)
	}

	gen := opts.IDGenerator
	if gen == nil {
		gen = report.UUIDv7Generator{}
	}
	rep := report.New(gen.Generate(), fig)
	formatter.VerboseLog("Run %s: %d panel(s), %d group(s)", rep.RunID, len(rep.Panels), rep.GroupCount())

	if formatter.Format == "json" {
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: rep, RunID: rep.RunID})
	}
	return report.WriteText(formatter.Writer, rep)
}
