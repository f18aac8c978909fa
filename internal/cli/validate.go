package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/converge"
	"github.com/roach88/converger/internal/table"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Input  string            `json:"input"`
	Panels []PanelValidation `json:"panels"`
}

// PanelValidation reports whether one panel can be drawn from the table.
type PanelValidation struct {
	Title   string         `json:"title"`
	Groups  int            `json:"groups"`
	Missing []table.Column `json:"missing,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "validate [table]",
		Short: "Check the table against the configured panels without rendering",
		Long: `Load the table and configuration, check that every column each panel
references is present, and report how many groups qualify for each panel.

Exits 1 when a panel references a missing column, 2 when the table or
configuration cannot be loaded.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, preset, args, cmd)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "panel layout, replacing configured panels")

	return cmd
}

func runValidate(opts *RootOptions, preset string, args []string, cmd *cobra.Command) error {
	configureLogging(opts, cmd.ErrOrStderr())
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(opts, args, overrides{Preset: preset})
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load configuration", err)
	}
	specs, err := cfg.PanelSpecs()
	if err != nil {
		return formatter.Fail(ExitCommandError, "invalid panels", err)
	}
	t, err := table.Load(cfg.Input)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load table", err)
	}
	formatter.VerboseLog("Loaded %d row(s) from %s", len(t.Rows), cfg.Input)

	result := ValidationResult{Valid: true, Input: cfg.Input}
	for _, spec := range specs {
		pv, err := validatePanel(t, spec)
		if err != nil {
			return formatter.Fail(ExitCommandError, "invalid panel", err)
		}
		if len(pv.Missing) > 0 {
			result.Valid = false
		}
		result.Panels = append(result.Panels, pv)
	}

	if !result.Valid {
		return outputValidationFailure(formatter, result)
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	writeValidation(formatter, result)
	fmt.Fprintln(formatter.Writer, "✓ Table valid")
	return nil
}

// validatePanel lists the panel's absent columns, or counts its qualifying
// groups when none are absent.
func validatePanel(t *table.Table, spec chart.PanelSpec) (PanelValidation, error) {
	pv := PanelValidation{Title: spec.TitleFor(t)}
	seen := make(map[table.Column]bool)
	for _, c := range spec.Columns() {
		if c == "" || seen[c] || t.Has(c) {
			continue
		}
		seen[c] = true
		pv.Missing = append(pv.Missing, c)
	}
	if len(pv.Missing) > 0 {
		return pv, nil
	}

	sweep, err := spec.Sweep()
	if err != nil {
		return pv, err
	}
	groups, err := converge.DifferenceGroups(t, sweep)
	if err != nil {
		return pv, err
	}
	pv.Groups = len(groups)
	return pv, nil
}

func writeValidation(formatter *OutputFormatter, result ValidationResult) {
	for _, p := range result.Panels {
		if len(p.Missing) > 0 {
			fmt.Fprintf(formatter.Writer, "✗ %s: missing column(s) %v\n", p.Title, p.Missing)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✓ %s: %d qualifying group(s)\n", p.Title, p.Groups)
	}
}

// outputValidationFailure reports panels that cannot be drawn.
func outputValidationFailure(formatter *OutputFormatter, result ValidationResult) error {
	invalid := 0
	for _, p := range result.Panels {
		if len(p.Missing) > 0 {
			invalid++
		}
	}
	message := fmt.Sprintf("%d panel(s) reference columns missing from %s", invalid, result.Input)

	if formatter.Format == "json" {
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: ErrCodeValidation, Message: message},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}

	writeValidation(formatter, result)
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	return NewExitError(ExitFailure, message)
}
