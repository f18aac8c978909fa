package cli

import (
	"log/slog"
	"path/filepath"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/config"
	"github.com/roach88/converger/internal/table"
)

// overrides are the per-command flags that take precedence over the
// configuration file.
type overrides struct {
	Input  string
	Output string
	HTML   string
	Preset string
}

// loadConfig reads --config, or returns the defaults when it is unset, and
// applies the command line overrides. The default PNG goes next to the input.
func loadConfig(opts *RootOptions, args []string, o overrides) (config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		cfg, err = config.Load(opts.Config)
		if err != nil {
			return config.Config{}, err
		}
		slog.Debug("configuration loaded", "path", opts.Config)
	}

	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if o.Input != "" {
		cfg.Input = o.Input
	}
	if o.Output != "" {
		cfg.Output = o.Output
	} else if cfg.Output == config.DefaultOutput {
		cfg.Output = filepath.Join(filepath.Dir(cfg.Input), config.DefaultOutput)
	}
	if o.HTML != "" {
		cfg.HTML = o.HTML
	}
	if o.Preset != "" {
		cfg.Preset = o.Preset
		cfg.Panels = nil
	}
	return cfg, nil
}

// buildFigure loads the input table and resolves every configured panel.
func buildFigure(cfg config.Config) (*chart.Figure, error) {
	specs, err := cfg.PanelSpecs()
	if err != nil {
		return nil, err
	}

	t, err := table.Load(cfg.Input)
	if err != nil {
		return nil, err
	}
	slog.Debug("table loaded", "path", cfg.Input, "rows", len(t.Rows), "columns", len(t.Columns()))

	fig, err := chart.Build(t, specs, cfg.NoiseFloor)
	if err != nil {
		return nil, err
	}
	for _, p := range fig.Panels {
		if len(p.Groups) == 0 {
			slog.Debug("no qualifying groups", "panel", p.Title)
			continue
		}
		slog.Debug("panel built", "panel", p.Title, "groups", len(p.Groups), "threshold", p.Threshold)
	}
	return fig, nil
}
