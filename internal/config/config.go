// Package config loads the optional converger configuration file.
//
// A configuration is YAML or CUE. Either form is unified with the embedded
// schema (schema.cue, definition #Config), which supplies defaults and rejects
// unknown fields, then decoded into Config.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/roach88/converger/internal/chart"
	"github.com/roach88/converger/internal/converge"
)

//go:embed schema.cue
var schemaSource string

// Defaults applied when a field is absent.
const (
	DefaultInput       = "Si_converger.dat"
	DefaultOutput      = "Si_converger.png"
	DefaultWidth       = 10.0
	DefaultPanelHeight = 4.0
	DefaultPreset      = "full"
)

// Config is the effective converger configuration. Width and PanelHeight are
// in inches.
type Config struct {
	Input       string            `yaml:"input,omitempty" json:"input,omitempty"`
	Output      string            `yaml:"output,omitempty" json:"output,omitempty"`
	HTML        string            `yaml:"html,omitempty" json:"html,omitempty"`
	Width       float64           `yaml:"width,omitempty" json:"width,omitempty"`
	PanelHeight float64           `yaml:"panel_height,omitempty" json:"panel_height,omitempty"`
	NoiseFloor  float64           `yaml:"noise_floor,omitempty" json:"noise_floor,omitempty"`
	Preset      string            `yaml:"preset,omitempty" json:"preset,omitempty"`
	Panels      []chart.PanelSpec `yaml:"panels,omitempty" json:"panels,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Input:       DefaultInput,
		Output:      DefaultOutput,
		Width:       DefaultWidth,
		PanelHeight: DefaultPanelHeight,
		NoiseFloor:  converge.DefaultNoiseFloor,
		Preset:      DefaultPreset,
	}
}

// Load reads a .yaml, .yml or .cue configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, &Error{Code: CodeNotFound, Path: path, Message: "configuration file not found"}
	}
	if err != nil {
		return Config{}, &Error{Code: CodeReadFailed, Path: path, Message: "cannot read configuration", Err: err}
	}

	ctx := cuecontext.New()
	var v cue.Value
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v, err = encodeYAML(ctx, data)
		if err != nil {
			return Config{}, &Error{Code: CodeSyntax, Path: path, Message: "invalid YAML", Err: err}
		}
	case ".cue":
		v = ctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return Config{}, &Error{Code: CodeSyntax, Path: path, Message: details(err)}
		}
	default:
		return Config{}, &Error{
			Code:    CodeUnsupported,
			Path:    path,
			Message: fmt.Sprintf("unsupported extension %q (want .yaml, .yml or .cue)", filepath.Ext(path)),
		}
	}

	cfg, err := decode(ctx, v)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// encodeYAML decodes strictly into Config so misspelt keys fail with a line
// number, then hands the result to CUE for defaults and constraints.
func encodeYAML(ctx *cue.Context, data []byte) (cue.Value, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cue.Value{}, err
	}
	v := ctx.Encode(cfg)
	return v, v.Err()
}

func decode(ctx *cue.Context, v cue.Value) (Config, error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, &Error{Code: CodeSchema, Message: "embedded schema", Err: err}
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, &Error{Code: CodeSchema, Message: details(err)}
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, &Error{Code: CodeSchema, Message: "decode", Err: err}
	}
	if _, err := cfg.PanelSpecs(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func details(err error) string {
	return strings.TrimSpace(cueerrors.Details(err, nil))
}

// PanelSpecs returns the explicit panels, or the preset's when none are set.
func (c Config) PanelSpecs() ([]chart.PanelSpec, error) {
	specs := c.Panels
	if len(specs) == 0 {
		name := c.Preset
		if name == "" {
			name = DefaultPreset
		}
		var err error
		specs, err = chart.Preset(name)
		if err != nil {
			return nil, &Error{Code: CodeInvalid, Message: "preset", Err: err}
		}
	}
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, &Error{Code: CodeInvalid, Message: fmt.Sprintf("panel %d", i), Err: err}
		}
	}
	return specs, nil
}

// Size converts the configured inches to a render size.
func (c Config) Size() chart.Size {
	size := chart.DefaultSize
	if c.Width > 0 {
		size.Width = vg.Length(c.Width) * vg.Inch
	}
	if c.PanelHeight > 0 {
		size.PanelHeight = vg.Length(c.PanelHeight) * vg.Inch
	}
	return size
}

// Resolved returns c with the preset expanded into explicit panels.
func (c Config) Resolved() (Config, error) {
	specs, err := c.PanelSpecs()
	if err != nil {
		return Config{}, err
	}
	c.Panels = specs
	return c, nil
}

// YAML renders the configuration in the same form Load accepts.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
