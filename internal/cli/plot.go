package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/viewer"
)

// PlotOptions holds flags for the plot command.
type PlotOptions struct {
	*RootOptions
	Input  string
	Output string
	HTML   string
	Preset string
	Show   bool

	// Display allows overriding the on-screen viewer (for testing).
	// If nil, defaults to showFigure.
	Display func(path string) error
}

// showFigure opens a rendered PNG on screen.
var showFigure = viewer.Show

// PlotResult summarises a plot run.
type PlotResult struct {
	Input  string         `json:"input"`
	Output string         `json:"output"`
	HTML   string         `json:"html,omitempty"`
	Panels []PanelSummary `json:"panels"`
}

// PanelSummary is one rendered panel.
type PanelSummary struct {
	Title     string  `json:"title"`
	Groups    int     `json:"groups"`
	Lines     int     `json:"lines"`
	Threshold float64 `json:"threshold"`
}

func (r PlotResult) String() string {
	var b strings.Builder
	for _, p := range r.Panels {
		fmt.Fprintf(&b, "%s: %d group(s), %d line(s), threshold %g\n", p.Title, p.Groups, p.Lines, p.Threshold)
	}
	fmt.Fprintf(&b, "wrote %s", r.Output)
	if r.HTML != "" {
		fmt.Fprintf(&b, "\nwrote %s", r.HTML)
	}
	return b.String()
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plot [table]",
		Short: "Render the convergence figure",
		Long: `Render the convergence figure for a table.

Each panel groups the table rows by its fixed column, differences every
qualifying group against its row with the largest swept value, and draws the
differences on a symmetric-log y axis. The PNG is written and then opened in
a window; pass --show=false for batch runs. --html adds an interactive page.

Example:
  converger plot
  converger plot runs.dat --preset bands --output bands.png
  converger plot --config panels.cue --show=false`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(opts, args, cmd)
		},
	}

	addPlotFlags(cmd, opts)
	return cmd
}

func addPlotFlags(cmd *cobra.Command, opts *PlotOptions) {
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input table (default Si_converger.dat)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "PNG output path (default Si_converger.png next to the input)")
	cmd.Flags().StringVar(&opts.HTML, "html", "", "also write an interactive HTML page")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", fmt.Sprintf("panel layout %v, replacing configured panels", chart.PresetNames()))
	cmd.Flags().BoolVar(&opts.Show, "show", true, "open the PNG in a window when done")
}

func runPlot(opts *PlotOptions, args []string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions, cmd.ErrOrStderr())
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, args, overrides{
		Input:  opts.Input,
		Output: opts.Output,
		HTML:   opts.HTML,
		Preset: opts.Preset,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load configuration", err)
	}

	fig, err := buildFigure(cfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to build figure", err)
	}

	if err := chart.SavePNG(fig, cfg.Output, cfg.Size()); err != nil {
		return formatter.Fail(ExitCommandError, "failed to write PNG", err)
	}
	slog.Info("figure written", "path", cfg.Output, "panels", len(fig.Panels))

	if cfg.HTML != "" {
		if err := chart.SaveHTML(fig, cfg.HTML); err != nil {
			return formatter.Fail(ExitCommandError, "failed to write HTML", err)
		}
		slog.Info("page written", "path", cfg.HTML)
	}

	result := PlotResult{Input: cfg.Input, Output: cfg.Output, HTML: cfg.HTML}
	for _, p := range fig.Panels {
		result.Panels = append(result.Panels, PanelSummary{
			Title:     p.Title,
			Groups:    len(p.Groups),
			Lines:     len(p.Lines),
			Threshold: p.Threshold,
		})
	}
	if err := formatter.Success(result); err != nil {
		return err
	}

	if opts.Show {
		display := opts.Display
		if display == nil {
			display = showFigure
		}
		formatter.VerboseLog("Opening %s", cfg.Output)
		if err := display(cfg.Output); err != nil {
			_ = formatter.Error(ErrCodeDisplayFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to display figure", err)
		}
	}
	return nil
}
