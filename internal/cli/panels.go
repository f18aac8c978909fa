package cli

import (
	"github.com/spf13/cobra"
)

// NewPanelsCommand creates the panels command.
func NewPanelsCommand(rootOpts *RootOptions) *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "panels",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration, with the preset expanded into explicit
panels. The YAML output is itself a valid --config file, which makes it the
starting point for a custom layout.

Example:
  converger panels --preset bands > bands.yaml
  converger --config bands.yaml plot`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanels(rootOpts, preset, cmd)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "panel layout to expand, replacing configured panels")

	return cmd
}

func runPanels(opts *RootOptions, preset string, cmd *cobra.Command) error {
	configureLogging(opts, cmd.ErrOrStderr())
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts, nil, overrides{Preset: preset})
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load configuration", err)
	}
	resolved, err := cfg.Resolved()
	if err != nil {
		return formatter.Fail(ExitCommandError, "invalid panels", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(resolved)
	}
	out, err := resolved.YAML()
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to encode configuration", err)
	}
	_, err = formatter.Writer.Write(out)
	return err
}
