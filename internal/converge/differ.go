package converge

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/converger/internal/table"
)

// Mode selects how a row is differenced against its reference.
type Mode int

const (
	// ModeAbsolute plots |row - reference|, folding both signs together.
	ModeAbsolute Mode = iota
	// ModeSigned plots row - reference, for separate upper/lower bands.
	ModeSigned
)

func (m Mode) String() string {
	switch m {
	case ModeAbsolute:
		return "absolute"
	case ModeSigned:
		return "signed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "absolute" or "signed". The empty string is ModeAbsolute.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute", "abs":
		return ModeAbsolute, nil
	case "signed":
		return ModeSigned, nil
	}
	return 0, fmt.Errorf("%w: unknown difference mode %q", ErrInvalidSweep, s)
}

// ErrInvalidSweep is wrapped by errors describing an unusable Sweep.
var ErrInvalidSweep = errors.New("invalid sweep")

// Sweep describes one convergence test over the table.
type Sweep struct {
	Fixed       table.Column   // grouping column, held constant within a group
	Swept       table.Column   // varied column, the x axis
	Flag        table.Column   // optional run flag; empty keeps every row
	DuplicateOn table.Column   // column whose value must repeat; defaults to Fixed
	Observables []table.Column // differenced against the reference row
	Raw         []table.Column // carried through undifferenced (cost series)
	Mode        Mode
}

// Columns returns every column the sweep reads.
func (s Sweep) Columns() []table.Column {
	cols := []table.Column{s.Fixed, s.Swept}
	if s.Flag != "" {
		cols = append(cols, s.Flag)
	}
	if s.DuplicateOn != "" {
		cols = append(cols, s.DuplicateOn)
	}
	cols = append(cols, s.Observables...)
	cols = append(cols, s.Raw...)
	return cols
}

func (s Sweep) validate() error {
	if !s.Fixed.Valid() {
		return fmt.Errorf("%w: fixed column %q", ErrInvalidSweep, s.Fixed)
	}
	if s.Swept.Kind() != table.KindNumber || !s.Swept.Valid() {
		return fmt.Errorf("%w: swept column %q must be numeric", ErrInvalidSweep, s.Swept)
	}
	if s.Flag != "" && s.Flag.Kind() != table.KindFlag {
		return fmt.Errorf("%w: flag column %q is not a run flag", ErrInvalidSweep, s.Flag)
	}
	for _, c := range append(append([]table.Column{}, s.Observables...), s.Raw...) {
		if !c.Valid() || c.Kind() != table.KindNumber {
			return fmt.Errorf("%w: observable %q must be numeric", ErrInvalidSweep, c)
		}
	}
	return nil
}

// Series is one observable of one group, aligned with DifferenceSeries.X.
type Series struct {
	Column table.Column
	Values []float64
}

// DifferenceSeries is one group of a sweep, sorted ascending by the swept column.
type DifferenceSeries struct {
	Key       string      // fixed-column value shared by the group
	Rows      []table.Row // group rows, ascending by swept value
	X         []float64   // swept values
	Reference int         // index in Rows of the reference row
	Diffs     []Series    // one per Sweep.Observables
	Raw       []Series    // one per Sweep.Raw
}

// Diff returns the difference series for column c.
func (d *DifferenceSeries) Diff(c table.Column) (Series, bool) {
	for _, s := range d.Diffs {
		if s.Column == c {
			return s, true
		}
	}
	return Series{}, false
}

// Candidates returns every plotted series with its trailing element dropped.
// The trailing element is the reference row's zero whenever the maximum
// swept value is unique, and must not drive threshold selection.
func (d *DifferenceSeries) Candidates() [][]float64 {
	out := make([][]float64, 0, len(d.Diffs)+len(d.Raw))
	for _, s := range append(append([]Series{}, d.Raw...), d.Diffs...) {
		if len(s.Values) == 0 {
			out = append(out, nil)
			continue
		}
		out = append(out, s.Values[:len(s.Values)-1])
	}
	return out
}

// Groups is an ordered key -> series mapping.
type Groups []*DifferenceSeries

// Lookup returns the group with the given key.
func (g Groups) Lookup(key string) (*DifferenceSeries, bool) {
	for _, d := range g {
		if d.Key == key {
			return d, true
		}
	}
	return nil, false
}

// Keys returns group keys in order.
func (g Groups) Keys() []string {
	keys := make([]string, len(g))
	for i, d := range g {
		keys[i] = d.Key
	}
	return keys
}

// DifferenceGroups partitions t by s.Fixed and differences each group
// against its reference row. Groups with fewer than two rows are dropped.
// A sweep that matches no group returns an empty Groups and no error.
func DifferenceGroups(t *table.Table, s Sweep) (Groups, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := t.Require(s.Columns()...); err != nil {
		return nil, err
	}
	dupCol := s.DuplicateOn
	if dupCol == "" {
		dupCol = s.Fixed
	}

	counts := make(map[string]int)
	for _, r := range t.Rows {
		if k := r.Key(dupCol); k != "" {
			counts[k]++
		}
	}

	byKey := make(map[string][]table.Row)
	var keys []string
	for _, r := range t.Rows {
		if s.Flag != "" && !r.Flag(s.Flag) {
			continue
		}
		if counts[r.Key(dupCol)] < 2 {
			continue
		}
		key := r.Key(s.Fixed)
		if key == "" {
			continue
		}
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], r)
	}
	sortKeys(keys, s.Fixed)

	var groups Groups
	for _, key := range keys {
		rows := byKey[key]
		if len(rows) < 2 {
			continue
		}
		d, ok := differenceGroup(key, rows, s)
		if !ok {
			continue
		}
		groups = append(groups, d)
	}
	return groups, nil
}

func differenceGroup(key string, rows []table.Row, s Sweep) (*DifferenceSeries, bool) {
	sorted := append([]table.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := sorted[i].Number(s.Swept)
		b, _ := sorted[j].Number(s.Swept)
		return lessNaNLast(a, b)
	})

	d := &DifferenceSeries{
		Key:       key,
		Rows:      sorted,
		X:         make([]float64, len(sorted)),
		Reference: -1,
	}
	best := math.Inf(-1)
	for i, r := range sorted {
		x, _ := r.Number(s.Swept)
		d.X[i] = x
		// Strictly greater keeps the earliest input row among ties, since the
		// stable sort preserves input order for equal values.
		if !math.IsNaN(x) && (d.Reference < 0 || x > best) {
			best, d.Reference = x, i
		}
	}
	if d.Reference < 0 {
		return nil, false
	}

	ref := sorted[d.Reference]
	for _, c := range s.Observables {
		refValue, _ := ref.Number(c)
		values := make([]float64, len(sorted))
		for i, r := range sorted {
			v, _ := r.Number(c)
			diff := v - refValue
			if s.Mode == ModeAbsolute {
				diff = math.Abs(diff)
			}
			values[i] = diff
		}
		values[d.Reference] = 0
		d.Diffs = append(d.Diffs, Series{Column: c, Values: values})
	}
	for _, c := range s.Raw {
		values := make([]float64, len(sorted))
		for i, r := range sorted {
			values[i], _ = r.Number(c)
		}
		d.Raw = append(d.Raw, Series{Column: c, Values: values})
	}
	return d, true
}

func lessNaNLast(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	return math.IsNaN(b) || a < b
}

// sortKeys orders numeric keys numerically and text keys lexically.
func sortKeys(keys []string, c table.Column) {
	if c.Kind() != table.KindNumber {
		sort.Strings(keys)
		return
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := parseKey(keys[i])
		b, errB := parseKey(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
}

func parseKey(k string) (float64, error) {
	return strconv.ParseFloat(k, 64)
}
