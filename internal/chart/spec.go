package chart

import (
	"fmt"
	"sort"

	"github.com/roach88/converger/internal/converge"
	"github.com/roach88/converger/internal/table"
)

// Annotation selects the per-group suffix appended to legend labels.
type Annotation string

const (
	AnnotateNone           Annotation = "none"
	AnnotateFineGrid       Annotation = "fine_grid"
	AnnotateFineGridStrict Annotation = "fine_grid_strict"
	AnnotateGrid           Annotation = "grid"
)

// Valid reports whether a is a known annotation. The empty value means none.
func (a Annotation) Valid() bool {
	switch a {
	case "", AnnotateNone, AnnotateFineGrid, AnnotateFineGridStrict, AnnotateGrid:
		return true
	}
	return false
}

// ToleranceSpec draws a horizontal reference line for an observable. A zero
// Value or empty Label falls back to the observable's default tolerance.
type ToleranceSpec struct {
	Observable table.Column `yaml:"observable" json:"observable"`
	Value      float64      `yaml:"value,omitempty" json:"value,omitempty"`
	Label      string       `yaml:"label,omitempty" json:"label,omitempty"`
}

// PanelSpec declares one panel of the figure.
type PanelSpec struct {
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	XLabel    string `yaml:"x_label,omitempty" json:"x_label,omitempty"`
	YLabel    string `yaml:"y_label,omitempty" json:"y_label,omitempty"`
	KeySuffix string `yaml:"key_suffix,omitempty" json:"key_suffix,omitempty"`

	Fixed       table.Column   `yaml:"fixed" json:"fixed"`
	Swept       table.Column   `yaml:"swept" json:"swept"`
	Flag        table.Column   `yaml:"flag,omitempty" json:"flag,omitempty"`
	DuplicateOn table.Column   `yaml:"duplicate_on,omitempty" json:"duplicate_on,omitempty"`
	Mode        string         `yaml:"mode,omitempty" json:"mode,omitempty"`
	Observables []table.Column `yaml:"observables,omitempty" json:"observables,omitempty"`
	Raw         []table.Column `yaml:"raw,omitempty" json:"raw,omitempty"`

	Tolerances          []ToleranceSpec `yaml:"tolerances,omitempty" json:"tolerances,omitempty"`
	ScaleWithTolerances bool            `yaml:"scale_with_tolerances,omitempty" json:"scale_with_tolerances,omitempty"`
	GridTicks           bool            `yaml:"grid_ticks,omitempty" json:"grid_ticks,omitempty"`
	Annotate            Annotation      `yaml:"annotate,omitempty" json:"annotate,omitempty"`
}

// Sweep converts the spec into the differencing parameters.
func (s PanelSpec) Sweep() (converge.Sweep, error) {
	mode, err := converge.ParseMode(s.Mode)
	if err != nil {
		return converge.Sweep{}, err
	}
	return converge.Sweep{
		Fixed:       s.Fixed,
		Swept:       s.Swept,
		Flag:        s.Flag,
		DuplicateOn: s.DuplicateOn,
		Observables: s.Observables,
		Raw:         s.Raw,
		Mode:        mode,
	}, nil
}

// Columns returns every column the panel reads.
func (s PanelSpec) Columns() []table.Column {
	sweep := converge.Sweep{
		Fixed:       s.Fixed,
		Swept:       s.Swept,
		Flag:        s.Flag,
		DuplicateOn: s.DuplicateOn,
		Observables: s.Observables,
		Raw:         s.Raw,
	}
	cols := sweep.Columns()
	if s.Annotate == AnnotateFineGrid || s.Annotate == AnnotateFineGridStrict {
		cols = append(cols, table.ColFineGmax, table.ColFineGridScale)
	}
	return cols
}

// Validate checks the spec without a table.
func (s PanelSpec) Validate() error {
	if _, err := s.Sweep(); err != nil {
		return err
	}
	for _, c := range s.Columns() {
		if !c.Valid() {
			return fmt.Errorf("panel %q: unknown column %q", s.Title, c)
		}
	}
	if len(s.Observables) == 0 && len(s.Raw) == 0 {
		return fmt.Errorf("panel %q: no observables", s.Title)
	}
	if !s.Annotate.Valid() {
		return fmt.Errorf("panel %q: unknown annotation %q", s.Title, s.Annotate)
	}
	for _, tol := range s.Tolerances {
		if tol.Value < 0 {
			return fmt.Errorf("panel %q: negative tolerance for %q", s.Title, tol.Observable)
		}
		if _, ok := converge.ToleranceFor(tol.Observable); !ok && tol.Value == 0 {
			return fmt.Errorf("panel %q: no default tolerance for %q", s.Title, tol.Observable)
		}
	}
	return nil
}

func defaultTolerances() []ToleranceSpec {
	specs := make([]ToleranceSpec, len(converge.DefaultTolerances))
	for i, tol := range converge.DefaultTolerances {
		specs[i] = ToleranceSpec{Observable: tol.Observable}
	}
	return specs
}

var observables = []table.Column{table.ColEnergy, table.ColForce, table.ColStress}

// PresetFull is the three-panel layout for a set of input convergence runs:
// absolute differences with the cost of each calculation alongside.
var PresetFull = []PanelSpec{
	{
		Title:               "Cutoff Convergence",
		XLabel:              "Cutoff (eV)",
		YLabel:              "Value, diff or absolute",
		Fixed:               table.ColGrid,
		Swept:               table.ColCutoff,
		Flag:                table.ColCutoffRun,
		Mode:                "absolute",
		Observables:         observables,
		Raw:                 []table.Column{table.ColTotalTime},
		Tolerances:          defaultTolerances(),
		ScaleWithTolerances: true,
		Annotate:            AnnotateFineGrid,
	},
	{
		Title:               "Kpoint Convergence",
		XLabel:              "Kpoint Grid",
		KeySuffix:           " eV",
		Fixed:               table.ColCutoff,
		Swept:               table.ColGridSize,
		Flag:                table.ColKptRun,
		Mode:                "absolute",
		Observables:         observables,
		Raw:                 []table.Column{table.ColTotalTime},
		Tolerances:          defaultTolerances(),
		ScaleWithTolerances: true,
		GridTicks:           true,
		Annotate:            AnnotateFineGridStrict,
	},
	{
		Title:               "Fine Gmax Convergence",
		XLabel:              "Fine Gmax (1/A)",
		KeySuffix:           " eV",
		Fixed:               table.ColCutoff,
		Swept:               table.ColFineGmax,
		Flag:                table.ColFineGmaxRun,
		DuplicateOn:         table.ColGrid,
		Mode:                "absolute",
		Observables:         observables,
		Raw:                 []table.Column{table.ColTotalTime},
		Tolerances:          defaultTolerances(),
		ScaleWithTolerances: true,
		Annotate:            AnnotateGrid,
	},
}

// PresetBands is the two-panel layout for a set of output runs: signed
// differences against symmetric tolerance bands.
var PresetBands = []PanelSpec{
	{
		Title:       "Cutoff Convergence",
		XLabel:      "Cutoff (eV)",
		Fixed:       table.ColGrid,
		Swept:       table.ColCutoff,
		Mode:        "signed",
		Observables: observables,
		Tolerances:  defaultTolerances(),
	},
	{
		Title:       "Kpoint Convergence",
		XLabel:      "Kpoint Grid",
		KeySuffix:   " eV",
		Fixed:       table.ColCutoff,
		Swept:       table.ColGridSize,
		Mode:        "signed",
		Observables: observables,
		Tolerances:  defaultTolerances(),
		GridTicks:   true,
	},
}

var presets = map[string][]PanelSpec{
	"full":  PresetFull,
	"bands": PresetBands,
}

// Preset returns a copy of the named panel layout.
func Preset(name string) ([]PanelSpec, error) {
	specs, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (known: %v)", name, PresetNames())
	}
	return append([]PanelSpec(nil), specs...), nil
}

// PresetNames returns the known preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
