package table

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Column identifies one field of a Row.
type Column string

const (
	ColGrid          Column = "kpoint"
	ColGridSize      Column = "grid_size" // derived from ColGrid
	ColCutoff        Column = "cutoff"
	ColFineGmax      Column = "fine_gmax"
	ColFineGridScale Column = "fine_grid_scale"
	ColTotalTime     Column = "total_time"
	ColEnergy        Column = "energy"
	ColForce         Column = "force"
	ColStress        Column = "stress"
	ColCutoffRun     Column = "cutoff_run"
	ColKptRun        Column = "kpt_run"
	ColFineGmaxRun   Column = "fgmax_run"
)

// Kind is the storage type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindFlag
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindFlag:
		return "flag"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var columnKinds = map[Column]Kind{
	ColGrid:          KindText,
	ColGridSize:      KindNumber,
	ColCutoff:        KindNumber,
	ColFineGmax:      KindNumber,
	ColFineGridScale: KindNumber,
	ColTotalTime:     KindNumber,
	ColEnergy:        KindNumber,
	ColForce:         KindNumber,
	ColStress:        KindNumber,
	ColCutoffRun:     KindFlag,
	ColKptRun:        KindFlag,
	ColFineGmaxRun:   KindFlag,
}

// RequiredColumns must be present in every table.
var RequiredColumns = []Column{ColGrid, ColCutoff, ColEnergy, ColForce, ColStress}

// aliases maps folded header names (unit suffix removed) to columns.
var aliases = map[string]Column{
	"kpoint":          ColGrid,
	"kpoints":         ColGrid,
	"grid":            ColGrid,
	"grid_size":       ColGridSize,
	"kpt_mult":        ColGridSize,
	"cutoff":          ColCutoff,
	"fine_gmax":       ColFineGmax,
	"fgmax":           ColFineGmax,
	"fine_grid_scale": ColFineGridScale,
	"total_time":      ColTotalTime,
	"time":            ColTotalTime,
	"energy":          ColEnergy,
	"force":           ColForce,
	"stress":          ColStress,
	"cutoff_run":      ColCutoffRun,
	"kpt_run":         ColKptRun,
	"fgmax_run":       ColFineGmaxRun,
	"fine_gmax_run":   ColFineGmaxRun,
}

// Kind returns the storage kind of c.
func (c Column) Kind() Kind {
	return columnKinds[c]
}

// Valid reports whether c is a known column.
func (c Column) Valid() bool {
	_, ok := columnKinds[c]
	return ok
}

// Derived reports whether c is computed rather than read from the file.
func (c Column) Derived() bool {
	return c == ColGridSize
}

// ParseColumn resolves a header field to its column ("Cutoff_(eV/ion)",
// "cutoff", "kpt_mult", ...). Panel configurations use the canonical names.
func ParseColumn(name string) (Column, error) {
	key, _ := splitHeader(name)
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	return "", &ParseError{
		Code:    CodeUnknownColumn,
		Column:  name,
		Message: fmt.Sprintf("unknown column (known: %s)", strings.Join(KnownColumns(), ", ")),
	}
}

// KnownColumns returns the canonical column names, sorted.
func KnownColumns() []string {
	names := make([]string, 0, len(columnKinds))
	for c := range columnKinds {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

// splitHeader normalizes a header field into its lookup key and unit.
// "Energy_(eV/ion)" gives ("energy", "eV/ion").
func splitHeader(h string) (key, unit string) {
	h = norm.NFC.String(strings.TrimSpace(h))
	name := h
	if i := strings.Index(h, "_("); i >= 0 && strings.HasSuffix(h, ")") {
		name = h[:i]
		unit = h[i+2 : len(h)-1]
	} else if i := strings.Index(h, "("); i > 0 && strings.HasSuffix(h, ")") {
		name = strings.TrimRight(h[:i], "_ ")
		unit = h[i+1 : len(h)-1]
	}
	key = cases.Fold().String(strings.ReplaceAll(name, "-", "_"))
	return key, unit
}

// displayName turns a header name part into label text: "Total_time" -> "Total time".
func displayName(h string) string {
	name := norm.NFC.String(strings.TrimSpace(h))
	if i := strings.Index(name, "("); i > 0 {
		name = strings.TrimRight(name[:i], "_ ")
	}
	return strings.ReplaceAll(name, "_", " ")
}

// ColumnTitle is the display name of c when the table has no header for it.
func ColumnTitle(c Column) string {
	switch c {
	case ColGridSize:
		return "Kpoint grid size"
	case ColGrid:
		return "Kpoint grid"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}
